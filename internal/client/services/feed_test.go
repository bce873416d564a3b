package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialctl/internal/client/models"
	"socialctl/internal/common"
	"socialctl/internal/logging"
)

func TestFeedLoadHydratesAuthors(t *testing.T) {
	api := newFakeAPI()
	api.feed = []models.FeedPost{
		{PostID: "p1", AuthorID: "a1"},
		{PostID: "p2", AuthorID: "a2"},
		{PostID: "p3", AuthorID: "a1"},
	}
	api.profiles["a1"] = &models.Profile{UserID: "a1", Username: "ada"}
	api.profiles["a2"] = &models.Profile{UserID: "a2", Username: "bob"}

	svc := NewFeedService(api, logging.Discard())
	posts, err := svc.Load(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "ada", posts[0].Author.Username)
	assert.Equal(t, "bob", posts[1].Author.Username)
	assert.Equal(t, "ada", posts[2].Author.Username)

	// Distinct authors are fetched once, however many posts they have.
	assert.Equal(t, 1, api.profileHits["a1"])
	assert.Equal(t, 1, api.profileHits["a2"])
}

func TestFeedLoadAuthorFailureDegrades(t *testing.T) {
	api := newFakeAPI()
	api.feed = []models.FeedPost{
		{PostID: "p1", AuthorID: "a1"},
		{PostID: "p2", AuthorID: "a2"},
	}
	api.profiles["a1"] = &models.Profile{UserID: "a1", Username: "ada"}
	api.profileErr["a2"] = common.ErrNotFound

	svc := NewFeedService(api, logging.Discard())
	posts, err := svc.Load(context.Background(), "user-1")
	require.NoError(t, err, "one missing author must not fail the feed")
	require.Len(t, posts, 2)

	assert.NotNil(t, posts[0].Author)
	assert.Nil(t, posts[1].Author)
}

func TestFeedLoadFeedError(t *testing.T) {
	api := newFakeAPI()
	api.feedErr = common.ErrUnavailable

	svc := NewFeedService(api, logging.Discard())
	_, err := svc.Load(context.Background(), "user-1")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestToggleLike(t *testing.T) {
	t.Run("like", func(t *testing.T) {
		api := newFakeAPI()
		svc := NewFeedService(api, logging.Discard())

		post := HydratedPost{FeedPost: models.FeedPost{PostID: "p1", LikeCount: 2}}
		got, err := svc.ToggleLike(context.Background(), post)
		require.NoError(t, err)

		assert.True(t, got.IsLiked)
		assert.Equal(t, 3, got.LikeCount)
		assert.Equal(t, []string{"p1"}, api.likes)
	})

	t.Run("unlike", func(t *testing.T) {
		api := newFakeAPI()
		svc := NewFeedService(api, logging.Discard())

		post := HydratedPost{FeedPost: models.FeedPost{PostID: "p1", LikeCount: 3, IsLiked: true}}
		got, err := svc.ToggleLike(context.Background(), post)
		require.NoError(t, err)

		assert.False(t, got.IsLiked)
		assert.Equal(t, 2, got.LikeCount)
		assert.Equal(t, []string{"p1"}, api.unlikes)
	})

	t.Run("server failure rolls back", func(t *testing.T) {
		api := newFakeAPI()
		api.likeErr = errors.New("500 internal server error")
		svc := NewFeedService(api, logging.Discard())

		post := HydratedPost{FeedPost: models.FeedPost{PostID: "p1", LikeCount: 2}}
		got, err := svc.ToggleLike(context.Background(), post)
		require.Error(t, err)

		assert.False(t, got.IsLiked, "display state reverts on failure")
		assert.Equal(t, 2, got.LikeCount)
	})
}
