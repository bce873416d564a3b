package cli

import (
	"context"
	"fmt"
	"strings"
)

// Feed loads the hydrated feed of the session user and prints it.
func (a *App) Feed(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		printlnFn("Log in first.")
		return nil
	}

	posts, err := a.feed.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		printlnFn("Feed is empty.")
		return nil
	}

	for _, post := range posts {
		author := post.AuthorName
		if post.Author != nil {
			author = post.Author.Username
		}
		liked := " "
		if post.IsLiked {
			liked = "*"
		}
		printlnFn(fmt.Sprintf("[%s] %s%s: %s", post.PostID, liked, author, post.Content))
		for _, m := range post.Media {
			printlnFn("    media: " + m.URL)
		}
		printlnFn(fmt.Sprintf("    likes: %d, comments: %d", post.LikeCount, post.CommentCount))
	}
	return nil
}

// Like marks a post liked.
func (a *App) Like(ctx context.Context, postID string) error {
	if strings.TrimSpace(postID) == "" {
		printlnFn("Usage: like <post-id>")
		return nil
	}
	if err := a.api.Like(ctx, postID); err != nil {
		return err
	}
	printlnFn("Liked", postID)
	return nil
}

// Unlike removes a like.
func (a *App) Unlike(ctx context.Context, postID string) error {
	if strings.TrimSpace(postID) == "" {
		printlnFn("Usage: unlike <post-id>")
		return nil
	}
	if err := a.api.Unlike(ctx, postID); err != nil {
		return err
	}
	printlnFn("Unliked", postID)
	return nil
}
