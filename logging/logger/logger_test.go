package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ncobase/newsdesk/ctxutil"
	"github.com/ncobase/newsdesk/logging/logger/config"
	"github.com/sirupsen/logrus"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := newLogger()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return out
}

func TestEntryCarriesTraceIDAndVersion(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetVersion("v1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-abc")
	l.Info(ctx, "hello")

	line := decodeLine(t, buf)
	if line[ctxutil.TraceIDKey] != "trace-abc" {
		t.Errorf("expected trace id, got %v", line[ctxutil.TraceIDKey])
	}
	if line[VersionKey] != "v1.2.3" {
		t.Errorf("expected version, got %v", line[VersionKey])
	}
	if line["msg"] != "hello" {
		t.Errorf("unexpected message %v", line["msg"])
	}
}

func TestWithFieldsMasksSensitiveValues(t *testing.T) {
	l, buf := newTestLogger(t)

	l.WithFields(context.Background(), logrus.Fields{
		"token":    "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig",
		"password": "hunter2",
		"email":    "editor@example.com",
		"header":   "Bearer abc.def.ghi",
	}).Info("login")

	line := decodeLine(t, buf)
	if line["token"] != "******" {
		t.Errorf("token not masked: %v", line["token"])
	}
	if line["password"] != "******" {
		t.Errorf("password not masked: %v", line["password"])
	}
	if line["email"] != "editor@example.com" {
		t.Errorf("email should be kept, got %v", line["email"])
	}
	if strings.Contains(line["header"].(string), "abc.def.ghi") {
		t.Errorf("bearer value leaked: %v", line["header"])
	}
}

func TestDesensitizeStruct(t *testing.T) {
	type payload struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}
	d := NewDesensitizer(config.DefaultDesensitization())
	out := d.DesensitizeFields(logrus.Fields{"payload": &payload{Token: "secret-token", Name: "Ada"}})

	m, ok := out["payload"].(map[string]any)
	if !ok {
		t.Fatalf("expected struct to be flattened, got %T", out["payload"])
	}
	if m["token"] != "******" {
		t.Errorf("token not masked: %v", m["token"])
	}
	if m["name"] != "Ada" {
		t.Errorf("name changed: %v", m["name"])
	}
}

func TestDisabledDesensitizer(t *testing.T) {
	cfg := config.DefaultDesensitization()
	cfg.Enabled = false
	d := NewDesensitizer(cfg)

	out := d.DesensitizeFields(logrus.Fields{"password": "plain"})
	if out["password"] != "plain" {
		t.Errorf("expected value untouched, got %v", out["password"])
	}
}
