package media

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"socialctl/internal/netx"
)

// TicketRequest describes the object an upload ticket is requested for.
// FileName and MimeType describe the post-rasterization output, not the
// user's original file.
type TicketRequest struct {
	FileName  string
	MimeType  string
	SubjectID string
}

// UploadTicket is a broker-issued write credential: a single-use presigned
// URL plus the object key it is bound to. FinalFileURL, when present, is the
// durable readable URL for the object.
type UploadTicket struct {
	PresignedURL string
	Key          string
	FinalFileURL string

	mu     sync.Mutex
	burned bool
}

// consume marks the ticket used. The second and later calls fail: a presigned
// URL must not be presented twice, whatever the first attempt's outcome was.
func (t *UploadTicket) consume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.burned {
		return ErrTicketBurned
	}
	t.burned = true
	return nil
}

// Burned reports whether a write was already attempted with this ticket.
func (t *UploadTicket) Burned() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.burned
}

// TicketIssuer obtains presigned write credentials from the broker.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, req TicketRequest) (*UploadTicket, error)
	// IssueTickets requests credentials for a whole batch in one call,
	// returning tickets in request order.
	IssueTickets(ctx context.Context, reqs []TicketRequest) ([]*UploadTicket, error)
}

// ViewResolver exchanges an object key for a time-limited readable URL.
type ViewResolver interface {
	ViewURL(ctx context.Context, key string) (string, error)
}

// StorageWriter performs the raw write of encoded bytes to a presigned URL.
type StorageWriter interface {
	Put(ctx context.Context, url string, body []byte, contentType string) error
}

// HTTPStorage is the production StorageWriter.
type HTTPStorage struct {
	Client *http.Client
}

func (s *HTTPStorage) Put(ctx context.Context, url string, body []byte, contentType string) error {
	return netx.PutPresigned(ctx, s.Client, url, body, contentType)
}

// PutToStorage writes blob through store using ticket, burning the ticket
// first. No retry happens here: on failure the caller must request a fresh
// ticket and restart the sequence.
func PutToStorage(ctx context.Context, store StorageWriter, ticket *UploadTicket, blob []byte, contentType string) error {
	if err := ticket.consume(); err != nil {
		return err
	}
	if err := store.Put(ctx, ticket.PresignedURL, blob, contentType); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}
