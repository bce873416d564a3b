package media

import "errors"

// Step errors of the upload pipeline. Each failed submit surfaces exactly one
// of these; callers match with errors.Is and roll the flow back to the crop
// step for retry.
var (
	// ErrTicketIssuance: the broker was unreachable, returned a non-success
	// status, or returned a response missing the write URL or object key.
	ErrTicketIssuance = errors.New("upload ticket issuance failed")

	// ErrRasterization: the source image could not be decoded or its preview
	// handle was already released.
	ErrRasterization = errors.New("rasterization failed")

	// ErrStorageWrite: the direct PUT to object storage failed. The ticket is
	// burned regardless; a retry needs a fresh one.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrCommit: the backend of record rejected the reference update. The
	// object exists in storage but is not part of canonical state.
	ErrCommit = errors.New("reference commit failed")
)

var (
	// ErrTicketBurned is returned when a presigned URL is presented for a
	// second write attempt.
	ErrTicketBurned = errors.New("upload ticket already used")

	// ErrPreviewReleased is returned when a released preview handle is read.
	ErrPreviewReleased = errors.New("preview handle released")

	// ErrPipelineClosed is returned by operations on a torn-down pipeline.
	ErrPipelineClosed = errors.New("pipeline closed")
)
