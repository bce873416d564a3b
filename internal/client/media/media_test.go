package media

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestPNG creates a w×h PNG under t.TempDir and returns its path.
func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), fmt.Sprintf("src-%dx%d.png", w, h))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

type fakeIssuer struct {
	mu      sync.Mutex
	calls   int
	lastReq []TicketRequest
	err     error
	tickets func(reqs []TicketRequest) []*UploadTicket
}

func (f *fakeIssuer) IssueTicket(ctx context.Context, req TicketRequest) (*UploadTicket, error) {
	tickets, err := f.IssueTickets(ctx, []TicketRequest{req})
	if err != nil {
		return nil, err
	}
	return tickets[0], nil
}

func (f *fakeIssuer) IssueTickets(ctx context.Context, reqs []TicketRequest) ([]*UploadTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = reqs
	if f.err != nil {
		return nil, f.err
	}
	if f.tickets != nil {
		return f.tickets(reqs), nil
	}
	out := make([]*UploadTicket, len(reqs))
	for i := range reqs {
		out[i] = &UploadTicket{
			PresignedURL: fmt.Sprintf("https://storage.local/put/%d", i),
			Key:          fmt.Sprintf("media/key-%d", i),
			FinalFileURL: fmt.Sprintf("https://storage.local/get/key-%d", i),
		}
	}
	return out, nil
}

type fakeStore struct {
	mu     sync.Mutex
	puts   []string
	failOn map[string]error
}

func (f *fakeStore) Put(ctx context.Context, url string, body []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, url)
	if err, ok := f.failOn[url]; ok {
		return err
	}
	return nil
}

func (f *fakeStore) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.puts))
	copy(out, f.puts)
	return out
}

type fakeCommitter struct {
	mu      sync.Mutex
	commits []string
	err     error
}

func (f *fakeCommitter) CommitAvatar(ctx context.Context, userID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.commits = append(f.commits, key)
	return nil
}

type fakeResolver struct {
	url string
	err error
}

func (f *fakeResolver) ViewURL(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://storage.local/view/" + key, nil
}
