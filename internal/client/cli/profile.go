package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Bio edits the session user's bio.
func (a *App) Bio(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		printlnFn("Log in first.")
		return nil
	}

	bio, err := getMultiline(a.reader, "New bio", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.profile.UpdateBio(ctx, sess.UserID, bio); err != nil {
		return err
	}
	printlnFn("Bio updated.")
	return nil
}

// ShowProfile prints a user's profile. With no argument it shows the session
// user's own.
func (a *App) ShowProfile(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		sess := a.session.Current()
		if !sess.LoggedIn() {
			printlnFn("Usage: profile <user-id>")
			return nil
		}
		userID = sess.UserID
	}

	profile, err := a.profile.Get(ctx, userID)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", profile.Username, profile.UserID))
	if profile.Bio != "" {
		printlnFn(profile.Bio)
	}
	if profile.AvatarURL != "" {
		printlnFn("avatar: " + profile.AvatarURL)
	}
	return nil
}

// Follow adds a social-graph edge from the session user.
func (a *App) Follow(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		printlnFn("Usage: follow <user-id>")
		return nil
	}
	if err := a.profile.Follow(ctx, userID); err != nil {
		return err
	}
	printlnFn("Following", userID)
	return nil
}

// Unfollow removes the edge.
func (a *App) Unfollow(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		printlnFn("Usage: unfollow <user-id>")
		return nil
	}
	if err := a.profile.Unfollow(ctx, userID); err != nil {
		return err
	}
	printlnFn("Unfollowed", userID)
	return nil
}
