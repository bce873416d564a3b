package media

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"socialctl/internal/logging"
)

// BatchUploader writes a set of previews to object storage for one post. All
// tickets come from a single broker call and the PUTs run concurrently, but
// the returned URLs keep selection order so the post's media order matches
// what the user arranged. Views resolves object keys for tickets issued
// without a durable URL; a post must never reference an empty URL.
type BatchUploader struct {
	Tickets TicketIssuer
	Store   StorageWriter
	Views   ViewResolver
	Log     logging.Logger
}

// Upload returns the durable readable URLs of the written objects, in the
// order of previews. Any single write failing fails the whole batch; already
// written siblings are left behind in storage and nothing is committed.
func (b *BatchUploader) Upload(ctx context.Context, subjectID string, previews []*Preview) ([]string, error) {
	if len(previews) == 0 {
		return nil, nil
	}

	blobs := make([][]byte, len(previews))
	reqs := make([]TicketRequest, len(previews))
	for i, preview := range previews {
		blob, err := preview.Bytes()
		if err != nil {
			return nil, err
		}
		blobs[i] = blob
		reqs[i] = TicketRequest{
			FileName:  preview.SourceName,
			MimeType:  preview.MimeType,
			SubjectID: subjectID,
		}
	}

	tickets, err := b.Tickets.IssueTickets(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTicketIssuance, err)
	}
	if len(tickets) != len(previews) {
		return nil, fmt.Errorf("%w: got %d tickets for %d files", ErrTicketIssuance, len(tickets), len(previews))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, ticket := range tickets {
		i, ticket := i, ticket
		g.Go(func() error {
			return PutToStorage(gctx, b.Store, ticket, blobs[i], reqs[i].MimeType)
		})
	}
	if err := g.Wait(); err != nil {
		if b.Log != nil {
			b.Log.Warn(ctx, "batch upload failed", "files", len(previews), "error", err)
		}
		return nil, err
	}

	urls := make([]string, len(tickets))
	for i, ticket := range tickets {
		url := ticket.FinalFileURL
		if url == "" {
			if b.Views == nil {
				return nil, fmt.Errorf("%w: ticket %d has no final url and no resolver is configured", ErrTicketIssuance, i)
			}
			url, err = b.Views.ViewURL(ctx, ticket.Key)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTicketIssuance, err)
			}
		}
		urls[i] = url
	}
	return urls, nil
}
