package services

import (
	"context"
	"sync"

	"socialctl/internal/client/models"
)

// fakeAPI implements api.Client with programmable behavior per call.
type fakeAPI struct {
	mu sync.Mutex

	profiles    map[string]*models.Profile
	profileErr  map[string]error
	profileHits map[string]int

	feed    []models.FeedPost
	feedErr error

	created   []models.CreatePostPayload
	createErr error

	likes, unlikes []string
	likeErr        error

	committed map[string]string

	follows, unfollows []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		profiles:    make(map[string]*models.Profile),
		profileErr:  make(map[string]error),
		profileHits: make(map[string]int),
		committed:   make(map[string]string),
	}
}

func (f *fakeAPI) Register(ctx context.Context, email, username string, password []byte) error {
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email string, password []byte) (*models.AuthUser, error) {
	return &models.AuthUser{UserID: "user-1"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error { return nil }

func (f *fakeAPI) Status(ctx context.Context) (*models.AuthUser, error) {
	return &models.AuthUser{UserID: "user-1"}, nil
}

func (f *fakeAPI) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileHits[userID]++
	if err := f.profileErr[userID]; err != nil {
		return nil, err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return &models.Profile{UserID: userID, Username: "user-" + userID}, nil
}

func (f *fakeAPI) UpdateBio(ctx context.Context, userID, bio string) error { return nil }

func (f *fakeAPI) CommitAvatar(ctx context.Context, userID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed[userID] = key
	return nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, payload models.CreatePostPayload) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	return &models.Post{
		PostID:   "post-1",
		AuthorID: "user-1",
		Content:  payload.Content,
		Media:    payload.Media,
		Tags:     payload.Tags,
	}, nil
}

func (f *fakeAPI) Feed(ctx context.Context, userID string) ([]models.FeedPost, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return f.feed, nil
}

func (f *fakeAPI) Posts(ctx context.Context, userID string) ([]models.Post, error) {
	return nil, nil
}

func (f *fakeAPI) Like(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likeErr != nil {
		return f.likeErr
	}
	f.likes = append(f.likes, postID)
	return nil
}

func (f *fakeAPI) Unlike(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likeErr != nil {
		return f.likeErr
	}
	f.unlikes = append(f.unlikes, postID)
	return nil
}

func (f *fakeAPI) Follow(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.follows = append(f.follows, userID)
	return nil
}

func (f *fakeAPI) Unfollow(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unfollows = append(f.unfollows, userID)
	return nil
}
