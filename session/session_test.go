package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/data"
	"github.com/ncobase/newsdesk/structs"
)

var editor = &structs.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: structs.RoleEditor}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func TestLoginPersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	s := New(kv)

	var got []structs.Session
	cancel := s.Subscribe(func(sess structs.Session) { got = append(got, sess) })
	defer cancel()

	if s.IsAuthenticated(ctx) {
		t.Fatal("new store should be signed out")
	}
	if err := s.Login(ctx, editor, "opaque-token"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !s.IsAuthenticated(ctx) {
		t.Fatal("expected authenticated after login")
	}
	if s.Token(ctx) != "opaque-token" {
		t.Errorf("unexpected token %q", s.Token(ctx))
	}

	if v, _ := kv.Get(ctx, consts.TokenStorageKey); v != "opaque-token" {
		t.Errorf("token not persisted, got %q", v)
	}
	raw, _ := kv.Get(ctx, consts.UserStorageKey)
	var u structs.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID != "u1" {
		t.Errorf("user not persisted: %q %v", raw, err)
	}

	if len(got) != 1 || got[0].UserID != "u1" {
		t.Errorf("expected one notification, got %+v", got)
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := New(data.NewMemoryStore())
	if err := s.Login(context.Background(), editor, ""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if s.IsAuthenticated(context.Background()) {
		t.Error("should stay signed out")
	}
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	if err := New(kv).Login(ctx, editor, "opaque-token"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	s := New(kv)
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	cur := s.Current(ctx)
	if cur.Token != "opaque-token" || cur.Email != editor.Email {
		t.Errorf("unexpected session %+v", cur)
	}
}

func TestHydrateMalformedUser(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	_ = kv.Set(ctx, consts.TokenStorageKey, "opaque-token")
	_ = kv.Set(ctx, consts.UserStorageKey, "{broken")

	s := New(kv)
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate should not fail on malformed data: %v", err)
	}
	if s.IsAuthenticated(ctx) {
		t.Error("malformed data should yield an empty session")
	}
}

func TestHydrateAbsent(t *testing.T) {
	s := New(data.NewMemoryStore())
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if s.IsAuthenticated(context.Background()) {
		t.Error("absent data should yield an empty session")
	}
}

func TestLogoutClearsStorage(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	s := New(kv)
	_ = s.Login(ctx, editor, "opaque-token")

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if s.IsAuthenticated(ctx) {
		t.Error("expected signed out")
	}
	if _, err := kv.Get(ctx, consts.TokenStorageKey); err != data.ErrNotFound {
		t.Errorf("token should be removed, got %v", err)
	}
	if _, err := kv.Get(ctx, consts.UserStorageKey); err != data.ErrNotFound {
		t.Errorf("user should be removed, got %v", err)
	}
}

func TestUpdateKeepsToken(t *testing.T) {
	ctx := context.Background()
	s := New(data.NewMemoryStore())
	_ = s.Login(ctx, editor, "opaque-token")

	renamed := *editor
	renamed.Name = "Ada L."
	if err := s.Update(ctx, &renamed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	cur := s.Current(ctx)
	if cur.Name != "Ada L." || cur.Token != "opaque-token" {
		t.Errorf("unexpected session %+v", cur)
	}
}

func TestUpdateRequiresSession(t *testing.T) {
	s := New(data.NewMemoryStore())
	if err := s.Update(context.Background(), editor); err == nil {
		t.Fatal("expected error when signed out")
	}
}

func TestExpiredTokenLogsOut(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	kv := data.NewMemoryStore()
	s := New(kv, WithClock(func() time.Time { return clock }))

	token := signedToken(t, now.Add(time.Hour))
	if err := s.Login(ctx, editor, token); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !s.IsAuthenticated(ctx) {
		t.Fatal("fresh token should authenticate")
	}

	notified := false
	s.Subscribe(func(sess structs.Session) {
		if !sess.Authenticated() {
			notified = true
		}
	})

	clock = now.Add(2 * time.Hour)
	if s.Token(ctx) != "" {
		t.Error("expired token should not be returned")
	}
	if !notified {
		t.Error("listeners should see the automatic logout")
	}
	if _, err := kv.Get(ctx, consts.TokenStorageKey); err != data.ErrNotFound {
		t.Errorf("expired token should be removed from storage, got %v", err)
	}
}

func TestHydrateDiscardsExpiredToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	kv := data.NewMemoryStore()
	raw, _ := json.Marshal(editor)
	_ = kv.Set(ctx, consts.UserStorageKey, string(raw))
	_ = kv.Set(ctx, consts.TokenStorageKey, signedToken(t, now.Add(-time.Minute)))

	s := New(kv, WithClock(func() time.Time { return now }))
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if s.IsAuthenticated(ctx) {
		t.Error("expired token should be discarded on hydrate")
	}
}

func TestSubscribeCancel(t *testing.T) {
	ctx := context.Background()
	s := New(data.NewMemoryStore())
	calls := 0
	cancel := s.Subscribe(func(structs.Session) { calls++ })
	cancel()

	_ = s.Login(ctx, editor, "opaque-token")
	if calls != 0 {
		t.Errorf("cancelled listener was called %d times", calls)
	}
}

func TestExpiresAt(t *testing.T) {
	exp := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	got, ok := ExpiresAt(signedToken(t, exp))
	if !ok || !got.Equal(exp) {
		t.Errorf("expected %s, got %s %v", exp, got, ok)
	}
	if _, ok := ExpiresAt("opaque-token"); ok {
		t.Error("opaque token should have no expiry")
	}
}
