// Package session holds the authenticated identity of the operator and
// persists it to the local store under the "token" and "user" keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/data"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/structs"
)

// Listener is notified with the new session after every change.
type Listener func(structs.Session)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger, the standard logger by default.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the auth session store.
type Store struct {
	mu      sync.RWMutex
	kv      data.Store
	current structs.Session

	subsMu sync.Mutex
	subs   map[int]Listener
	nextID int

	now func() time.Time
	log *logger.Logger
}

// New creates a store over kv. Call Hydrate to load the persisted session.
func New(kv data.Store, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		subs: make(map[int]Listener),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.StdLogger()
	}
	return s
}

// Hydrate loads the persisted session. Absent, malformed or expired data
// yields an empty session; only storage failures are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	token, err := s.kv.Get(ctx, consts.TokenStorageKey)
	if errors.Is(err, data.ErrNotFound) || (err == nil && token == "") {
		s.set(structs.Session{})
		return nil
	}
	if err != nil {
		s.set(structs.Session{})
		return fmt.Errorf("session: read token: %w", err)
	}

	raw, err := s.kv.Get(ctx, consts.UserStorageKey)
	if err != nil && !errors.Is(err, data.ErrNotFound) {
		s.set(structs.Session{})
		return fmt.Errorf("session: read user: %w", err)
	}

	var user structs.User
	if raw == "" || json.Unmarshal([]byte(raw), &user) != nil {
		s.log.Warn(ctx, "persisted user is missing or malformed, starting signed out")
		s.set(structs.Session{})
		return nil
	}

	if s.expired(token) {
		s.log.Info(ctx, "persisted token has expired, signing out")
		return s.Logout(ctx)
	}

	s.set(structs.NewSession(&user, token))
	return nil
}

// Login persists the session and notifies listeners.
func (s *Store) Login(ctx context.Context, user *structs.User, token string) error {
	if token == "" {
		return ecode.Authorization(ecode.NoLogin, "login response carried no token")
	}
	if user == nil {
		return ecode.Authorization(ecode.NoLogin, "login response carried no user")
	}

	if err := s.persist(ctx, user, token); err != nil {
		return err
	}
	s.set(structs.NewSession(user, token))

	s.log.WithFields(ctx, map[string]any{"user_id": user.ID, "role": user.Role}).Info("signed in")
	return nil
}

// Update replaces the identity fields after a profile change, keeping the token.
func (s *Store) Update(ctx context.Context, user *structs.User) error {
	if user == nil {
		return fmt.Errorf("session: update with nil user")
	}

	s.mu.RLock()
	token := s.current.Token
	s.mu.RUnlock()
	if token == "" {
		return ecode.Authorization(ecode.NoLogin, "")
	}

	if err := s.persist(ctx, user, token); err != nil {
		return err
	}
	s.set(structs.NewSession(user, token))
	return nil
}

// Logout clears the persisted session and notifies listeners. The in-memory
// session is cleared even when the store fails.
func (s *Store) Logout(ctx context.Context) error {
	s.set(structs.Session{})

	var errs []error
	if err := s.kv.Delete(ctx, consts.TokenStorageKey); err != nil {
		errs = append(errs, err)
	}
	if err := s.kv.Delete(ctx, consts.UserStorageKey); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Current returns the session, signing out first when the token has expired.
func (s *Store) Current(ctx context.Context) structs.Session {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()

	if cur.Token != "" && s.expired(cur.Token) {
		s.log.Info(ctx, "token has expired, signing out")
		if err := s.Logout(ctx); err != nil {
			s.log.WithError(ctx, err).Warn("failed to clear expired session")
		}
		return structs.Session{}
	}
	return cur
}

// Token returns the current bearer token, "" when signed out or expired.
func (s *Store) Token(ctx context.Context) string {
	return s.Current(ctx).Token
}

// IsAuthenticated derives from the presence of a token.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Subscribe registers fn for change notifications. The returned function
// removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// Close drops every listener. The underlying store is owned by the caller.
func (s *Store) Close() error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = make(map[int]Listener)
	return nil
}

func (s *Store) persist(ctx context.Context, user *structs.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.kv.Set(ctx, consts.UserStorageKey, string(raw)); err != nil {
		return fmt.Errorf("session: write user: %w", err)
	}
	if err := s.kv.Set(ctx, consts.TokenStorageKey, token); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// set swaps the session and notifies listeners when it changed.
func (s *Store) set(next structs.Session) {
	s.mu.Lock()
	changed := s.current != next
	s.current = next
	s.mu.Unlock()

	if !changed {
		return
	}

	s.subsMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// expired reports whether token is a JWT whose exp claim has passed.
// The signature is not verified; the client never holds the signing key.
// Opaque tokens never expire client side.
func (s *Store) expired(token string) bool {
	exp, ok := ExpiresAt(token)
	return ok && !s.now().Before(exp)
}

// ExpiresAt returns the exp claim of a JWT token.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
