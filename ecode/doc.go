// Package ecode defines standardized error codes and the typed error used by
// every layer between the GraphQL transport and the dashboard surfaces.
//
// # Error Code Convention
//
//   - 0: Success (OK)
//   - -100 to -199: Authentication/authorization errors
//   - -400 to -499: Request validation and resource errors
//   - -500+: Server, transport and asset-service errors
//
// # Error Kinds
//
// Every failure a screen can surface falls in one of four kinds:
//
//	ecode.IsNetwork(err)        // network unreachable, timeout, breaker open
//	ecode.IsValidation(err)     // bad input; Fields carries per-field messages
//	ecode.IsAuthorization(err)  // missing, invalid or expired token
//	ecode.IsAsset(err)          // upload/delete against the asset service
//
// Use Message to obtain the single inline message a screen shows:
//
//	msg := ecode.Message(err)
//
// # HTTP Status Mapping
//
//	httpStatus := ecode.ToHTTPStatus(ecode.NoLogin)
//	// Returns: 401
package ecode
