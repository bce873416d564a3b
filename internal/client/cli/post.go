package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"socialctl/internal/client/services"
)

// Post composes and publishes a post: a multiline body, then image paths one
// per prompt until an empty line. The draft owns the selected images and is
// closed on every exit path, so an abandoned compose leaves no files behind.
func (a *App) Post(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		printlnFn("Log in first.")
		return nil
	}

	draft, err := services.NewDraft()
	if err != nil {
		return err
	}
	defer draft.Close()

	body, err := getMultiline(a.reader, "Post text", os.Stdout)
	if err != nil {
		return err
	}
	draft.Body = body

	for {
		path, err := getSimpleText(a.reader, "Attach image path (empty to continue)", os.Stdout)
		if err != nil {
			return err
		}
		if path == "" {
			break
		}
		preview, err := draft.AddImage(path)
		if err != nil {
			printlnFn("Cannot attach:", err.Error())
			continue
		}
		printlnFn(fmt.Sprintf("Attached %s as %s", preview.SourceName, preview.ID))
	}

	tags, err := getSimpleText(a.reader, "Tags, comma separated (optional)", os.Stdout)
	if err != nil {
		return err
	}
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			draft.Tags = append(draft.Tags, tag)
		}
	}

	post, err := a.posts.Publish(ctx, sess.UserID, draft)
	if err != nil {
		return err
	}
	printlnFn("Published post", post.PostID)
	return nil
}
