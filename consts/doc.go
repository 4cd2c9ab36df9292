// Package consts defines application-wide constants shared by the session,
// draft, transport and HTTP layers.
//
// This package provides:
//   - Context key constants for storing/retrieving values
//   - Keys used in the local persisted store
//   - Header names sent to the GraphQL API and the dashboard
//   - Dashboard route paths
//
// # Context Keys
//
// Standard keys for storing values in context.Context:
//
//	ctx = ctxutil.SetValue(ctx, consts.TraceIDKey, "abc")
//
// # Storage Keys
//
// The local store mirrors the browser storage used by the dashboard:
//
//	consts.TokenStorageKey  // "token"
//	consts.UserStorageKey   // "user"
//	consts.DraftStorageKey  // "news_draft_data"
package consts
