package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialctl/internal/client/models"
	"socialctl/internal/logging"
)

type stubResolver struct {
	urls map[string]string
	err  error
}

func (s *stubResolver) ViewURL(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.urls[key], nil
}

func newProfileService(api *fakeAPI, views *stubResolver) *ProfileService {
	return NewProfileService(ProfileServiceConfig{
		API:        api,
		Views:      views,
		Tickets:    &stubIssuer{},
		Store:      &stubStore{},
		OutputSize: 512,
		Log:        logging.Discard(),
	})
}

func TestProfileGetResolvesAvatar(t *testing.T) {
	api := newFakeAPI()
	api.profiles["u1"] = &models.Profile{UserID: "u1", AvatarAccessKey: "avatars/u1.png"}
	views := &stubResolver{urls: map[string]string{"avatars/u1.png": "https://storage.local/signed/u1"}}

	profile, err := newProfileService(api, views).Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.local/signed/u1", profile.AvatarURL)
}

func TestProfileGetKeepsServerURL(t *testing.T) {
	api := newFakeAPI()
	api.profiles["u1"] = &models.Profile{
		UserID:          "u1",
		AvatarAccessKey: "avatars/u1.png",
		AvatarURL:       "https://storage.local/get/u1.png",
	}
	views := &stubResolver{urls: map[string]string{"avatars/u1.png": "https://other"}}

	profile, err := newProfileService(api, views).Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.local/get/u1.png", profile.AvatarURL, "server answer wins")
}

func TestProfileGetResolutionFailureDegrades(t *testing.T) {
	api := newFakeAPI()
	api.profiles["u1"] = &models.Profile{UserID: "u1", AvatarAccessKey: "avatars/u1.png"}
	views := &stubResolver{err: errors.New("broker down")}

	profile, err := newProfileService(api, views).Get(context.Background(), "u1")
	require.NoError(t, err, "profile loads without an avatar image")
	assert.Empty(t, profile.AvatarURL)
}

func TestStartAvatarChange(t *testing.T) {
	svc := newProfileService(newFakeAPI(), &stubResolver{})

	p, err := svc.StartAvatarChange("user-1")
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Begin())
	assert.Error(t, p.Begin(), "each call returns an independent flow")

	q, err := svc.StartAvatarChange("user-1")
	require.NoError(t, err)
	defer q.Close()
	require.NoError(t, q.Begin())
}

func TestFollowUnfollow(t *testing.T) {
	api := newFakeAPI()
	svc := newProfileService(api, &stubResolver{})

	require.NoError(t, svc.Follow(context.Background(), "u2"))
	require.NoError(t, svc.Unfollow(context.Background(), "u2"))
	assert.Equal(t, []string{"u2"}, api.follows)
	assert.Equal(t, []string{"u2"}, api.unfollows)
}
