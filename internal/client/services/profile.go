package services

import (
	"context"

	"socialctl/internal/client/api"
	"socialctl/internal/client/media"
	"socialctl/internal/client/models"
	"socialctl/internal/logging"
)

// ProfileService manages profile reads and edits, including the avatar
// change flow.
type ProfileService struct {
	api   api.Client
	views media.ViewResolver

	tickets    media.TicketIssuer
	store      media.StorageWriter
	outputSize int

	log logging.Logger
}

type ProfileServiceConfig struct {
	API        api.Client
	Views      media.ViewResolver
	Tickets    media.TicketIssuer
	Store      media.StorageWriter
	OutputSize int
	Log        logging.Logger
}

func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	return &ProfileService{
		api:        cfg.API,
		views:      cfg.Views,
		tickets:    cfg.Tickets,
		store:      cfg.Store,
		outputSize: cfg.OutputSize,
		log:        log,
	}
}

// Get loads a profile and fills in a viewable avatar URL when the backend
// returned only the object key.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.api.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.AvatarURL == "" && profile.AvatarAccessKey != "" && s.views != nil {
		url, err := s.views.ViewURL(ctx, profile.AvatarAccessKey)
		if err != nil {
			// The profile is still usable without an avatar image.
			s.log.Warn(ctx, "avatar url resolution failed", "user_id", userID, "error", err)
		} else {
			profile.AvatarURL = url
		}
	}
	return profile, nil
}

// UpdateBio replaces the profile's bio text.
func (s *ProfileService) UpdateBio(ctx context.Context, userID, bio string) error {
	return s.api.UpdateBio(ctx, userID, bio)
}

// StartAvatarChange creates a fresh avatar upload pipeline for userID. The
// caller drives it through its phases and must Close it when done.
func (s *ProfileService) StartAvatarChange(userID string) (*media.Pipeline, error) {
	return media.NewPipeline(media.PipelineConfig{
		SubjectID:  userID,
		OutputSize: s.outputSize,
		Tickets:    s.tickets,
		Store:      s.store,
		Views:      s.views,
		Backend:    s.api,
		Log:        s.log,
	})
}

// Follow and Unfollow manage the social graph edge from the session user.
func (s *ProfileService) Follow(ctx context.Context, userID string) error {
	return s.api.Follow(ctx, userID)
}

func (s *ProfileService) Unfollow(ctx context.Context, userID string) error {
	return s.api.Unfollow(ctx, userID)
}
