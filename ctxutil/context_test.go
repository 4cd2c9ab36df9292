package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnsureTraceIDKeepsExisting(t *testing.T) {
	ctx := SetTraceID(context.Background(), "trace-1")

	ctx, id := EnsureTraceID(ctx)
	if id != "trace-1" {
		t.Fatalf("expected existing trace id, got %q", id)
	}
	if got := GetTraceID(ctx); got != "trace-1" {
		t.Errorf("expected trace-1 in context, got %q", got)
	}
}

func TestEnsureTraceIDGenerates(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	if id == "" {
		t.Fatal("expected generated trace id")
	}
	if GetTraceID(ctx) != id {
		t.Errorf("expected context to carry %q", id)
	}
}

func TestValuesWriteThroughGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	ctx := FromGinContext(c)
	ctx = SetUserID(ctx, "user-1")

	if v, ok := c.Get(userIDKey); !ok || v != "user-1" {
		t.Errorf("expected gin context to hold user id, got %v", v)
	}
	if GetUserID(ctx) != "user-1" {
		t.Errorf("expected user-1, got %q", GetUserID(ctx))
	}
}
