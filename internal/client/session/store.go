// Package session holds the client's authenticated-user state. The state is
// observable: interested components subscribe and are notified on login,
// logout and restore, mirroring how every account-scoped surface re-renders
// when the session changes.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialctl/internal/client/models"
	"socialctl/internal/common"
	"socialctl/internal/logging"
)

// Session is the authenticated user, or the zero value when logged out.
type Session struct {
	UserID    string
	Username  string
	Token     string
	ExpiresAt time.Time
}

// LoggedIn reports whether the session holds a user.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}

// StatusChecker restores the session from the server on startup.
type StatusChecker interface {
	Status(ctx context.Context) (*models.AuthUser, error)
}

// Store is the single source of truth for the current session.
type Store struct {
	mu      sync.RWMutex
	current Session

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Session)

	log logging.Logger
}

func NewStore(log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{subs: make(map[int]func(Session)), log: log}
}

// Init restores the session from the server's status endpoint. An
// unauthorized answer is a normal logged-out start, not an error.
func (s *Store) Init(ctx context.Context, api StatusChecker) error {
	user, err := api.Status(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.Clear(ctx)
			return nil
		}
		return err
	}
	s.Set(ctx, user)
	return nil
}

// Set installs the authenticated user and notifies subscribers. The token is
// a server-issued credential; only its registered claims are read here, for
// the expiry, and the signature is the server's business to verify.
func (s *Store) Set(ctx context.Context, user *models.AuthUser) {
	sess := Session{
		UserID:   user.UserID,
		Username: user.Username,
		Token:    user.Token,
	}
	if user.Token != "" {
		if exp, err := tokenExpiry(user.Token); err == nil {
			sess.ExpiresAt = exp
		} else {
			s.log.Warn(ctx, "session token claims unreadable", "error", err)
		}
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.log.Info(ctx, "session set", "user_id", sess.UserID)
	s.notify(sess)
}

// Current returns the session snapshot.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Clear drops the session and notifies subscribers.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	s.log.Info(ctx, "session cleared")
	s.notify(Session{})
}

// Subscribe registers fn to run on every session change and returns an
// unsubscribe func.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(sess Session) {
	s.subMu.Lock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}

// tokenExpiry reads the exp claim without verifying the signature.
func tokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
