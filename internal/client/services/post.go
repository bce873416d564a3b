package services

import (
	"context"
	"fmt"
	"strings"

	"socialctl/internal/client/api"
	"socialctl/internal/client/media"
	"socialctl/internal/client/models"
	"socialctl/internal/logging"
)

// Draft is a post under composition: text plus an ordered set of image
// previews. The draft owns its preview pool; Close releases every handle,
// so an abandoned draft leaves nothing behind.
type Draft struct {
	Body string
	Tags []string

	pool *media.Pool
}

func NewDraft() (*Draft, error) {
	pool, err := media.NewPool()
	if err != nil {
		return nil, err
	}
	return &Draft{pool: pool}, nil
}

// AddImage attaches a source image to the draft.
func (d *Draft) AddImage(sourcePath string) (*media.Preview, error) {
	return d.pool.Add(sourcePath)
}

// RemoveImage detaches one image, releasing exactly its handle.
func (d *Draft) RemoveImage(id string) error {
	return d.pool.Remove(id)
}

// Images returns the attached previews in selection order.
func (d *Draft) Images() []*media.Preview {
	return d.pool.List()
}

// Close releases every attached preview.
func (d *Draft) Close() error {
	return d.pool.Close()
}

// PostService publishes drafts: media first, then the post referencing it.
type PostService struct {
	api      api.Client
	uploader *media.BatchUploader
	log      logging.Logger
}

func NewPostService(apiClient api.Client, uploader *media.BatchUploader, log logging.Logger) *PostService {
	if log == nil {
		log = logging.Discard()
	}
	return &PostService{api: apiClient, uploader: uploader, log: log}
}

// Publish uploads the draft's images and creates the post, media in the
// draft's order. Any image failing to upload fails the publish before the
// backend sees anything; the draft stays intact for another attempt.
func (s *PostService) Publish(ctx context.Context, userID string, draft *Draft) (*models.Post, error) {
	body := strings.TrimSpace(draft.Body)
	previews := draft.Images()
	if body == "" && len(previews) == 0 {
		return nil, fmt.Errorf("empty post")
	}

	urls, err := s.uploader.Upload(ctx, userID, previews)
	if err != nil {
		return nil, err
	}

	items := make([]models.MediaItem, len(urls))
	for i, u := range urls {
		items[i] = models.MediaItem{Type: "image", URL: u}
	}

	post, err := s.api.CreatePost(ctx, models.CreatePostPayload{
		Content: body,
		Media:   items,
		Tags:    draft.Tags,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "post published", "post_id", post.PostID, "media", len(items))
	return post, nil
}
