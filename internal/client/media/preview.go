package media

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"socialctl/internal/filex"
)

// Preview is a selected image awaiting upload. It owns a scratch copy of the
// source file, the preview handle, which must be released exactly once,
// through the owning Pool, when the preview is removed, superseded, or the
// pool is closed. A handle never outlives its pool.
type Preview struct {
	ID         string
	SourceName string
	MimeType   string

	mu       sync.Mutex
	path     string
	released bool
}

// Path returns the scratch copy's location, or ErrPreviewReleased once the
// handle has been given back.
func (p *Preview) Path() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return "", ErrPreviewReleased
	}
	return p.path, nil
}

// Released reports whether the handle was already released.
func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

// Bytes reads the full scratch copy.
func (p *Preview) Bytes() ([]byte, error) {
	path, err := p.Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preview: %w", err)
	}
	return b, nil
}

// release removes the scratch file. Safe to call more than once; only the
// first call does work.
func (p *Preview) release() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil
	}
	p.released = true
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release preview %s: %w", p.ID, err)
	}
	return nil
}

// Pool owns the live preview handles of one editing flow, in selection order.
// Every path that removes a preview record goes through the pool, so each
// handle is released exactly once. The pool is the single shared mutable
// resource of a flow and callers never touch handles it no longer tracks.
type Pool struct {
	mu       sync.Mutex
	dir      string
	previews []*Preview
	closed   bool
}

// NewPool creates a pool with its own scratch directory.
func NewPool() (*Pool, error) {
	dir, err := os.MkdirTemp("", "socialctl-previews-*")
	if err != nil {
		return nil, fmt.Errorf("preview dir: %w", err)
	}
	return &Pool{dir: dir}, nil
}

// Add copies sourcePath into the pool and returns the new preview. The pool
// owns the copy; the caller's original file is never touched again.
func (p *Pool) Add(sourcePath string) (*Preview, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPipelineClosed
	}

	mimeType, err := sniffMime(sourcePath)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path, err := filex.CopyInto(p.dir, id+filepath.Ext(sourcePath), sourcePath)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		ID:         id,
		SourceName: filepath.Base(sourcePath),
		MimeType:   mimeType,
		path:       path,
	}
	p.previews = append(p.previews, preview)
	return preview, nil
}

// Remove releases exactly the named preview's handle and forgets it. Other
// previews stay valid.
func (p *Pool) Remove(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, preview := range p.previews {
		if preview.ID == id {
			p.previews = append(p.previews[:i], p.previews[i+1:]...)
			return preview.release()
		}
	}
	return fmt.Errorf("preview %s: not in pool", id)
}

// List returns the live previews in selection order.
func (p *Pool) List() []*Preview {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Preview, len(p.previews))
	copy(out, p.previews)
	return out
}

// Len reports the number of live previews.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.previews)
}

// Close releases every live handle and removes the scratch directory.
// Idempotent: teardown may race a finishing upload.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for _, preview := range p.previews {
		if err := preview.release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.previews = nil
	if err := os.RemoveAll(p.dir); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// sniffMime detects the content type from the file's leading bytes.
func sniffMime(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	mimeType := http.DetectContentType(buf[:n])
	return strings.Split(mimeType, ";")[0], nil
}
