// Package services implements the application services between the CLI and
// the transport clients: feed hydration, post drafting and publishing,
// profile and avatar management.
package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"socialctl/internal/client/api"
	"socialctl/internal/client/models"
	"socialctl/internal/logging"
)

// HydratedPost is a feed entry with its author's profile attached. Author is
// nil when the profile lookup failed; the post itself still renders.
type HydratedPost struct {
	models.FeedPost
	Author *models.Profile
}

// FeedService loads the feed and enriches it with author profiles.
type FeedService struct {
	api api.Client
	log logging.Logger
}

func NewFeedService(apiClient api.Client, log logging.Logger) *FeedService {
	if log == nil {
		log = logging.Discard()
	}
	return &FeedService{api: apiClient, log: log}
}

// Load fetches the feed for userID and hydrates it. Each distinct author is
// fetched once however many posts they have; a failed profile lookup degrades
// that author's posts to Author == nil instead of failing the feed.
func (s *FeedService) Load(ctx context.Context, userID string) ([]HydratedPost, error) {
	posts, err := s.api.Feed(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles := s.authorProfiles(ctx, posts)

	out := make([]HydratedPost, len(posts))
	for i, post := range posts {
		out[i] = HydratedPost{FeedPost: post, Author: profiles[post.AuthorID]}
	}
	s.log.Debug(ctx, "feed hydrated", "posts", len(out), "authors", len(profiles))
	return out, nil
}

func (s *FeedService) authorProfiles(ctx context.Context, posts []models.FeedPost) map[string]*models.Profile {
	unique := make(map[string]struct{})
	for _, post := range posts {
		unique[post.AuthorID] = struct{}{}
	}

	var mu sync.Mutex
	profiles := make(map[string]*models.Profile, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	for authorID := range unique {
		authorID := authorID
		g.Go(func() error {
			profile, err := s.api.Profile(gctx, authorID)
			if err != nil {
				s.log.Warn(gctx, "author profile unavailable", "author_id", authorID, "error", err)
				return nil
			}
			mu.Lock()
			profiles[authorID] = profile
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; Wait only collects them.
	_ = g.Wait()
	return profiles
}

// ToggleLike flips the like state of post optimistically: the returned entry
// reflects the flip immediately, and the server call runs after. On server
// failure the previous state is returned along with the error so the caller
// rolls the display back.
func (s *FeedService) ToggleLike(ctx context.Context, post HydratedPost) (HydratedPost, error) {
	flipped := post
	if post.IsLiked {
		flipped.IsLiked = false
		flipped.LikeCount--
	} else {
		flipped.IsLiked = true
		flipped.LikeCount++
	}

	var err error
	if post.IsLiked {
		err = s.api.Unlike(ctx, post.PostID)
	} else {
		err = s.api.Like(ctx, post.PostID)
	}
	if err != nil {
		s.log.Warn(ctx, "like toggle failed", "post_id", post.PostID, "error", err)
		return post, err
	}
	return flipped, nil
}
