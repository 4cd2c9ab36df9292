package graphql

import (
	"context"
	"net/http"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/ctxutil"
	"github.com/ncobase/newsdesk/structs"
)

// SessionSource yields the session snapshot a request is decorated with.
type SessionSource interface {
	Current(ctx context.Context) structs.Session
}

// SessionFunc adapts a function to SessionSource
type SessionFunc func(ctx context.Context) structs.Session

func (f SessionFunc) Current(ctx context.Context) structs.Session { return f(ctx) }

// Interceptor decorates an outgoing request right before dispatch. It runs
// once per call against the session snapshot taken for that call.
type Interceptor func(req *http.Request, s structs.Session) (*http.Request, error)

// BearerAuth sets "Authorization: Bearer <token>" when the session has a token.
func BearerAuth() Interceptor {
	return func(req *http.Request, s structs.Session) (*http.Request, error) {
		if s.Token != "" {
			req.Header.Set(consts.AuthorizationHeader, consts.BearerPrefix+s.Token)
		} else {
			req.Header.Del(consts.AuthorizationHeader)
		}
		return req, nil
	}
}

// UserAgent sets the User-Agent header
func UserAgent(ua string) Interceptor {
	return func(req *http.Request, _ structs.Session) (*http.Request, error) {
		if ua != "" {
			req.Header.Set(consts.UserAgentHeader, ua)
		}
		return req, nil
	}
}

// TraceHeader forwards the context trace ID as X-Request-ID
func TraceHeader() Interceptor {
	return func(req *http.Request, _ structs.Session) (*http.Request, error) {
		if id := ctxutil.GetTraceID(req.Context()); id != "" {
			req.Header.Set(consts.RequestIDHeader, id)
		}
		return req, nil
	}
}
