// Package ctxutil provides context utilities for request-scoped values.
//
// This package offers helpers for:
//   - Storing and retrieving values through context.Context or *gin.Context
//   - Tracking request/trace IDs across the dashboard, the CLI and the
//     GraphQL transport
//
// # Context Value Management
//
//	ctx = ctxutil.SetUserID(ctx, "user-123")
//	userID := ctxutil.GetUserID(ctx)
//
// # Trace IDs
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//
// When a *gin.Context is embedded with WithGinContext, values are written to
// both the gin context and the returned context.
package ctxutil
