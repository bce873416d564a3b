// Package api implements the HTTP/JSON client of the backend of record.
// Every call here is account-scoped and carries the session cookie; the
// upload-ticket broker has its own, deliberately unauthenticated client.
package api

import (
	"context"

	"socialctl/internal/client/models"
)

// Client is the surface of the backend of record used by the application
// services and the CLI.
type Client interface {
	// Auth.
	Register(ctx context.Context, email, username string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*models.AuthUser, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*models.AuthUser, error)

	// Profile.
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateBio(ctx context.Context, userID, bio string) error
	// CommitAvatar persists the uploaded object key as userID's avatar.
	// This is the durability boundary of the avatar upload pipeline.
	CommitAvatar(ctx context.Context, userID, avatarAccessKey string) error

	// Posts.
	CreatePost(ctx context.Context, payload models.CreatePostPayload) (*models.Post, error)
	Feed(ctx context.Context, userID string) ([]models.FeedPost, error)
	Posts(ctx context.Context, userID string) ([]models.Post, error)
	Like(ctx context.Context, postID string) error
	Unlike(ctx context.Context, postID string) error

	// Social graph.
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error
}
