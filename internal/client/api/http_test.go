package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialctl/internal/client/models"
	"socialctl/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestLogin_SetsCookieAndReturnsUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok123", Path: "/"})
		_ = json.NewEncoder(w).Encode(models.AuthUser{UserID: "7", Username: "amy", Token: "tok123"})
	})
	mux.HandleFunc("/auth/status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.AuthUser{UserID: "7", Username: "amy"})
	})

	c := newTestClient(t, mux)

	user, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "7", user.UserID)

	// The jar replays the session cookie on the next call.
	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "amy", st.Username)
}

func TestStatus_UnauthorizedMapsToSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session", http.StatusUnauthorized)
	}))

	_, err := c.Status(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestProfile_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.Profile(context.Background(), "404")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreatePost_SendsOrderedMedia(t *testing.T) {
	var got models.CreatePostPayload
	mux := http.NewServeMux()
	mux.HandleFunc("/pages/posts", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.Post{PostID: "p1", Content: got.Content, Media: got.Media})
	})

	c := newTestClient(t, mux)

	payload := models.CreatePostPayload{
		Content: "hello",
		Media: []models.MediaItem{
			{Type: "image", URL: "https://cdn/a.png"},
			{Type: "image", URL: "https://cdn/b.png"},
		},
	}
	post, err := c.CreatePost(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "p1", post.PostID)
	require.Len(t, got.Media, 2)
	assert.Equal(t, "https://cdn/a.png", got.Media[0].URL)
	assert.Equal(t, "https://cdn/b.png", got.Media[1].URL)
}

func TestCommitAvatar_PutsAccessKey(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))

	err := c.CommitAvatar(context.Background(), "7", "users/2026/1/abc")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/pages/profile/7/avatar", gotPath)
	assert.Equal(t, "users/2026/1/abc", gotBody["avatar_access_key"])
}

func TestDo_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Status(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLikeUnlike_Paths(t *testing.T) {
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.Like(context.Background(), "p9"))
	require.NoError(t, c.Unlike(context.Background(), "p9"))

	assert.Equal(t, []string{"PUT /pages/posts/p9/like", "PUT /pages/posts/p9/unlike"}, paths)
}
