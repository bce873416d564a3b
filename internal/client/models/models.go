// Package models defines the JSON shapes exchanged with the backend of
// record. Field names follow the backend contract, not Go conventions.
package models

import "time"

// AuthUser is the payload returned by login and auth-status calls. The
// session itself travels as a cookie; Token is a copy of the session JWT so
// the client can surface its claims (user id, expiry) without another call.
type AuthUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

// Profile is a user's public profile page data.
type Profile struct {
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	AvatarAccessKey string `json:"avatar_access_key,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
}

// MediaItem is one attachment on a post.
type MediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// CreatePostPayload is the body of the post-create call. Media preserves the
// user's selection order.
type CreatePostPayload struct {
	Content string      `json:"content"`
	Media   []MediaItem `json:"media,omitempty"`
	Tags    []string    `json:"tags,omitempty"`
}

// Post is the created-post representation returned by the backend.
type Post struct {
	PostID       string      `json:"post_id"`
	AuthorID     string      `json:"author_id"`
	Content      string      `json:"content"`
	Media        []MediaItem `json:"media,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
}

// FeedPost is one feed entry: a post plus like state for the viewer.
type FeedPost struct {
	PostID       string      `json:"post_id"`
	AuthorID     string      `json:"author_id"`
	AuthorName   string      `json:"author_name"`
	Content      string      `json:"content"`
	Media        []MediaItem `json:"media,omitempty"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
	IsLiked      bool        `json:"isLiked"`
}
