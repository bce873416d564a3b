package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"socialctl/internal/client/models"
	"socialctl/internal/common"
)

// HTTPClient talks JSON to the backend of record. The cookie jar holds the
// session credential so account-scoped calls are authenticated automatically.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// do issues one JSON request. A nil body sends no payload; a non-nil out
// decodes a 2xx response body into it.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapStatus converts a non-2xx response into a sentinel-wrapped error,
// keeping a snippet of the body for diagnostics.
func mapStatus(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(b))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	default:
		return fmt.Errorf("%w: %s: %s", common.ErrInternal, resp.Status, msg)
	}
}

func (c *HTTPClient) Register(ctx context.Context, email, username string, password []byte) error {
	payload := map[string]string{
		"email":    email,
		"username": username,
		"password": string(password),
	}
	return c.do(ctx, http.MethodPost, "/auth/register", payload, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.AuthUser, error) {
	payload := map[string]string{
		"email":    email,
		"password": string(password),
	}
	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &user); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &user, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Status(ctx context.Context) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/status", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/pages/profile/"+userID, nil, &p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", userID, err)
	}
	return &p, nil
}

func (c *HTTPClient) UpdateBio(ctx context.Context, userID, bio string) error {
	payload := map[string]string{"bio": bio}
	return c.do(ctx, http.MethodPut, "/pages/profile/"+userID+"/bio", payload, nil)
}

func (c *HTTPClient) CommitAvatar(ctx context.Context, userID, avatarAccessKey string) error {
	payload := map[string]string{"avatar_access_key": avatarAccessKey}
	return c.do(ctx, http.MethodPut, "/pages/profile/"+userID+"/avatar", payload, nil)
}

func (c *HTTPClient) CreatePost(ctx context.Context, payload models.CreatePostPayload) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/pages/posts", payload, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (c *HTTPClient) Feed(ctx context.Context, userID string) ([]models.FeedPost, error) {
	var posts []models.FeedPost
	if err := c.do(ctx, http.MethodGet, "/pages/posts/feed/"+userID, nil, &posts); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return posts, nil
}

func (c *HTTPClient) Posts(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/pages/posts/"+userID, nil, &posts); err != nil {
		return nil, fmt.Errorf("posts: %w", err)
	}
	return posts, nil
}

func (c *HTTPClient) Like(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPut, "/pages/posts/"+postID+"/like", nil, nil)
}

func (c *HTTPClient) Unlike(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPut, "/pages/posts/"+postID+"/unlike", nil, nil)
}

func (c *HTTPClient) Follow(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/users/"+userID+"/follow", nil, nil)
}

func (c *HTTPClient) Unfollow(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/users/"+userID+"/unfollow", nil, nil)
}
