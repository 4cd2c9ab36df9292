package ecode

import "net/http"

const (
	OK = 0

	NoLogin      = -101
	TokenExpired = -103
	AccessDenied = -104

	RequestErr = -400
	ParamErr   = -401
	NotFound   = -404
	Conflict   = -409

	ServerErr          = -500
	NetworkErr         = -502
	ServiceUnavailable = -503
	Deadline           = -504
	AssetErr           = -510
)

var messages = map[int]string{
	OK:                 "ok",
	NoLogin:            "Account not logged in",
	TokenExpired:       "Session expired, please log in again",
	AccessDenied:       "Access denied",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	NotFound:           "Resource not found",
	Conflict:           "Resource conflict",
	ServerErr:          "Internal server error",
	NetworkErr:         "Network unreachable",
	ServiceUnavailable: "Service unavailable",
	Deadline:           "Deadline exceeded",
	AssetErr:           "Asset service error",
}

// Text returns the message registered for code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a code to an HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NoLogin, TokenExpired:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case NetworkErr, AssetErr:
		return http.StatusBadGateway
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
