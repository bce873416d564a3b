// Package broker implements the client of the upload-URL broker: the service
// that issues presigned object-storage write credentials and resolves object
// keys to readable URLs. The broker is a separate origin from the backend of
// record and its endpoints are unauthenticated, so no cookie jar here.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"socialctl/internal/client/media"
	"socialctl/internal/common"
	"socialctl/internal/logging"
)

// Client requests upload tickets and view URLs over JSON/HTTP. It implements
// media.TicketIssuer and media.ViewResolver.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

type ticketItem struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	UserID   string `json:"userId"`
}

type ticketResponse struct {
	PresignedURL string `json:"presignedUrl"`
	Key          string `json:"key"`
	S3Key        string `json:"s3Key"`
	FinalFileURL string `json:"finalFileUrl"`
}

// toTicket validates the response shape. A ticket without a write URL or an
// object key is unusable and treated as a broker fault, not silently skipped.
func (r ticketResponse) toTicket() (*media.UploadTicket, error) {
	key := r.Key
	if key == "" {
		key = r.S3Key
	}
	if r.PresignedURL == "" || key == "" {
		return nil, fmt.Errorf("ticket response missing presignedUrl or key")
	}
	return &media.UploadTicket{
		PresignedURL: r.PresignedURL,
		Key:          key,
		FinalFileURL: r.FinalFileURL,
	}, nil
}

// IssueTicket requests a single upload ticket.
func (c *Client) IssueTicket(ctx context.Context, req media.TicketRequest) (*media.UploadTicket, error) {
	var resp ticketResponse
	if err := c.post(ctx, "/tickets", toItem(req), &resp); err != nil {
		return nil, err
	}
	ticket, err := resp.toTicket()
	if err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "ticket issued", "key", ticket.Key)
	return ticket, nil
}

// IssueTickets requests credentials for the whole batch in one call. The
// broker answers in request order and the order is preserved here.
func (c *Client) IssueTickets(ctx context.Context, reqs []media.TicketRequest) ([]*media.UploadTicket, error) {
	items := make([]ticketItem, len(reqs))
	for i, req := range reqs {
		items[i] = toItem(req)
	}

	var resp struct {
		Tickets []ticketResponse `json:"tickets"`
	}
	if err := c.post(ctx, "/tickets/batch", map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Tickets) != len(reqs) {
		return nil, fmt.Errorf("broker returned %d tickets for %d items", len(resp.Tickets), len(reqs))
	}

	tickets := make([]*media.UploadTicket, len(resp.Tickets))
	for i, r := range resp.Tickets {
		ticket, err := r.toTicket()
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i, err)
		}
		tickets[i] = ticket
	}
	c.log.Debug(ctx, "ticket batch issued", "count", len(tickets))
	return tickets, nil
}

// ViewURL exchanges an object key for a time-limited readable URL.
func (c *Client) ViewURL(ctx context.Context, key string) (string, error) {
	u := c.baseURL + "/view?key=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var out struct {
		ViewableURL string `json:"viewableUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode view response: %w", err)
	}
	if out.ViewableURL == "" {
		return "", fmt.Errorf("view response missing viewableUrl")
	}
	return out.ViewableURL, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: broker %s: %s", common.ErrInternal, resp.Status, strings.TrimSpace(string(b)))
}

func toItem(req media.TicketRequest) ticketItem {
	return ticketItem{
		FileName: req.FileName,
		FileType: req.MimeType,
		UserID:   req.SubjectID,
	}
}
