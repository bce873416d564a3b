package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"socialctl/internal/client/media"
)

// Avatar runs the interactive avatar change: pick a file, adjust the crop,
// submit. On failure the flow returns to the crop step with the selected
// image intact, so the user can retry or cancel. The pipeline is always
// closed on exit.
func (a *App) Avatar(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		printlnFn("Log in first.")
		return nil
	}

	pipeline, err := a.profile.StartAvatarChange(sess.UserID)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	if err := pipeline.Begin(); err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Image path", os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		return pipeline.Cancel()
	}
	if err := pipeline.Select(path); err != nil {
		return err
	}

	for {
		crop, err := getSimpleText(a.reader, "Crop x,y,side (empty keeps centered square)", os.Stdout)
		if err != nil {
			return err
		}
		if crop != "" {
			region, err := parseCrop(crop)
			if err != nil {
				printlnFn("Bad crop:", err.Error())
				continue
			}
			if err := pipeline.SetRegion(region); err != nil {
				return err
			}
		}

		submitErr := pipeline.Submit(ctx)
		if submitErr == nil {
			break
		}
		printlnFn("Upload failed:", submitErr.Error())

		again, err := getSimpleText(a.reader, "Retry? (y/n)", os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(again, "y") {
			return nil
		}
		if err := pipeline.Retry(); err != nil {
			return err
		}
	}

	printlnFn(fmt.Sprintf("Avatar updated: %s", pipeline.DisplayURL()))
	return pipeline.Reset()
}

// parseCrop reads "x,y,side" into a square crop region.
func parseCrop(s string) (media.CropRegion, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return media.CropRegion{}, fmt.Errorf("want x,y,side")
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return media.CropRegion{}, err
		}
		nums[i] = n
	}
	if nums[2] <= 0 {
		return media.CropRegion{}, fmt.Errorf("side must be positive")
	}
	return media.CropRegion{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[2], Zoom: 1}, nil
}
