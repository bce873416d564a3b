package media

import (
	"context"
	"fmt"
	"sync"

	"socialctl/internal/logging"
)

// Phase is the explicit state of an avatar change flow. Every transition goes
// through the Pipeline methods; there is no hidden intermediate state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseChoosing
	PhaseCropping
	PhaseUploading
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseChoosing:
		return "choosing"
	case PhaseCropping:
		return "cropping"
	case PhaseUploading:
		return "uploading"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Committer records the object key on the backend of record. This is the
// durability boundary: until it succeeds the uploaded object is not part of
// canonical state.
type Committer interface {
	CommitAvatar(ctx context.Context, userID, avatarAccessKey string) error
}

// PipelineConfig carries the collaborators of a Pipeline.
type PipelineConfig struct {
	SubjectID  string
	OutputSize int

	Tickets TicketIssuer
	Store   StorageWriter
	Views   ViewResolver
	Backend Committer
	Log     logging.Logger
}

// Pipeline drives one avatar change end to end: pick a source image, crop it,
// then submit (rasterize, obtain a ticket, write to storage, commit the key).
// The phase moves strictly Idle → Choosing → Cropping → Uploading and then to
// Done or Failed; Failed returns to Cropping with the preview intact so the
// user can retry without re-selecting.
type Pipeline struct {
	mu     sync.Mutex
	phase  Phase
	closed bool

	pool    *Pool
	preview *Preview
	region  CropRegion

	lastErr    error
	displayURL string

	subjectID  string
	outputSize int

	tickets TicketIssuer
	store   StorageWriter
	views   ViewResolver
	backend Committer
	log     logging.Logger
}

// NewPipeline creates an idle pipeline with its own preview pool.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	pool, err := NewPool()
	if err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{
		phase:      PhaseIdle,
		pool:       pool,
		subjectID:  cfg.SubjectID,
		outputSize: cfg.OutputSize,
		tickets:    cfg.Tickets,
		store:      cfg.Store,
		views:      cfg.Views,
		backend:    cfg.Backend,
		log:        log,
	}, nil
}

// Phase returns the current phase.
func (p *Pipeline) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Err returns the error of the last failed submit, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// DisplayURL returns the readable URL of the committed avatar after a
// successful submit.
func (p *Pipeline) DisplayURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayURL
}

// Preview returns the currently selected preview, or nil.
func (p *Pipeline) Preview() *Preview {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.preview
}

// Begin opens the picker: Idle → Choosing.
func (p *Pipeline) Begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase != PhaseIdle {
		return fmt.Errorf("begin: phase is %s, want idle", p.phase)
	}
	p.phase = PhaseChoosing
	return nil
}

// Cancel abandons the flow from any pre-submit phase, releasing the selected
// preview's handle and returning to Idle.
func (p *Pipeline) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase == PhaseUploading {
		return fmt.Errorf("cancel: upload in flight")
	}
	p.dropPreviewLocked()
	p.phase = PhaseIdle
	p.lastErr = nil
	return nil
}

// Select takes the chosen source file, copies it into the pool and moves to
// Cropping with a centered square crop preselected. Selecting again replaces
// the previous choice and releases its handle.
func (p *Pipeline) Select(sourcePath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase != PhaseChoosing && p.phase != PhaseCropping {
		return fmt.Errorf("select: phase is %s", p.phase)
	}

	preview, err := p.pool.Add(sourcePath)
	if err != nil {
		return err
	}
	p.dropPreviewLocked()
	p.preview = preview

	w, h, err := SourceBounds(preview)
	if err != nil {
		p.dropPreviewLocked()
		return err
	}
	p.region = CenteredSquare(w, h)
	p.phase = PhaseCropping
	return nil
}

// SetRegion replaces the crop selection while in Cropping.
func (p *Pipeline) SetRegion(region CropRegion) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase != PhaseCropping {
		return fmt.Errorf("set region: phase is %s", p.phase)
	}
	p.region = region
	return nil
}

// Submit runs the upload sequence: rasterize the crop, obtain a ticket, write
// the bytes to storage, commit the key to the backend, resolve the display
// URL. The lock is not held across network calls; a concurrent Close makes
// the completion a silent no-op.
func (p *Pipeline) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPipelineClosed
	}
	if p.phase != PhaseCropping {
		p.mu.Unlock()
		return fmt.Errorf("submit: phase is %s, want cropping", p.phase)
	}
	preview := p.preview
	region := p.region
	outputSize := p.outputSize
	p.phase = PhaseUploading
	p.lastErr = nil
	p.mu.Unlock()

	blob, err := RasterizeCrop(preview, region, outputSize)
	if err != nil {
		return p.fail(ctx, err)
	}

	ticket, err := p.tickets.IssueTicket(ctx, TicketRequest{
		FileName:  CanonicalFileName,
		MimeType:  CanonicalMime,
		SubjectID: p.subjectID,
	})
	if err != nil {
		return p.fail(ctx, fmt.Errorf("%w: %v", ErrTicketIssuance, err))
	}

	if err := PutToStorage(ctx, p.store, ticket, blob, CanonicalMime); err != nil {
		return p.fail(ctx, err)
	}

	display := ticket.FinalFileURL
	if display == "" && p.views != nil {
		display, err = p.views.ViewURL(ctx, ticket.Key)
		if err != nil {
			return p.fail(ctx, fmt.Errorf("%w: %v", ErrTicketIssuance, err))
		}
	}

	// Teardown may have raced the storage write; a closed flow must not
	// reach the backend.
	if p.isClosed() {
		return ErrPipelineClosed
	}
	if err := p.backend.CommitAvatar(ctx, p.subjectID, ticket.Key); err != nil {
		return p.fail(ctx, fmt.Errorf("%w: %v", ErrCommit, err))
	}

	return p.complete(ctx, display)
}

// Retry returns a failed flow to Cropping. The preview handle is still live,
// so the user adjusts the crop or just submits again.
func (p *Pipeline) Retry() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase != PhaseFailed {
		return fmt.Errorf("retry: phase is %s, want failed", p.phase)
	}
	if p.preview == nil || p.preview.Released() {
		return ErrPreviewReleased
	}
	p.phase = PhaseCropping
	return nil
}

// Reset acknowledges a finished flow: Done → Idle, releasing the preview.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if p.phase != PhaseDone {
		return fmt.Errorf("reset: phase is %s, want done", p.phase)
	}
	p.dropPreviewLocked()
	p.phase = PhaseIdle
	return nil
}

// Close tears the pipeline down, releasing every preview handle. Safe to call
// while a Submit is in flight: the submit's completion is dropped and no
// state mutates after Close returns.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.preview = nil
	return p.pool.Close()
}

// fail records the step error and moves to Failed, unless the pipeline closed
// while the submit was in flight.
func (p *Pipeline) fail(ctx context.Context, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	p.log.Warn(ctx, "avatar upload failed", "error", err)
	p.phase = PhaseFailed
	p.lastErr = err
	return err
}

// complete records success, unless the pipeline closed mid-flight.
func (p *Pipeline) complete(ctx context.Context, displayURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	p.log.Info(ctx, "avatar committed", "url", displayURL)
	p.phase = PhaseDone
	p.displayURL = displayURL
	p.lastErr = nil
	return nil
}

func (p *Pipeline) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Pipeline) dropPreviewLocked() {
	if p.preview != nil {
		_ = p.pool.Remove(p.preview.ID)
		p.preview = nil
	}
}
