package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/ctxutil"
	"github.com/ncobase/newsdesk/net/resp"
	"github.com/sirupsen/logrus"
)

// traceMiddleware reuses the caller's request ID or makes one, and puts it on
// the request context and the response.
func (s *Server) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(consts.RequestIDHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Set(consts.TraceIDKey, traceID)
		c.Header(consts.RequestIDHeader, traceID)
		c.Next()
	}
}

// loggerMiddleware creates request logging middleware.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		entry := s.log.WithFields(c.Request.Context(), logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Info("HTTP request")
	}
}

// requireAuth rejects dashboard requests without a signed-in session.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cur := s.deps.Session.Current(ctx)
		if !cur.Authenticated() {
			resp.Fail(c.Writer, resp.UnAuthorized("Please sign in"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctxutil.SetUserID(ctx, cur.UserID))
		c.Next()
	}
}
