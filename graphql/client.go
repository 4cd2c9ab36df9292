// Package graphql is the request pipeline to the remote news API: every call
// is decorated by interceptors against the current session, dispatched over
// HTTP, and its failure classified as a network, validation, authorization or
// server error.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/structs"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/ncobase/newsdesk/graphql"
	maxResponseSize = 10 << 20
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every call, 0 disables the bound
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithSession sets the source of the per-call session snapshot
func WithSession(src SessionSource) Option {
	return func(c *Client) { c.session = src }
}

// WithInterceptors appends interceptors after the bearer auth interceptor
func WithInterceptors(in ...Interceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, in...) }
}

// WithOnUnauthorized registers a hook run for authorization errors of
// session-authenticated operations
func WithOnUnauthorized(fn func(ctx context.Context, err error)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger, the standard logger by default
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithBreaker puts a circuit breaker in front of the transport. Validation
// and authorization failures do not count against it.
func WithBreaker(st gobreaker.Settings) Option {
	return func(c *Client) {
		st.IsSuccessful = func(err error) bool {
			return err == nil || ecode.IsValidation(err) || ecode.IsAuthorization(err)
		}
		c.breaker = gobreaker.NewCircuitBreaker(st)
	}
}

// Client sends GraphQL operations to one endpoint
type Client struct {
	endpoint       string
	http           *http.Client
	timeout        time.Duration
	session        SessionSource
	interceptors   []Interceptor
	onUnauthorized func(ctx context.Context, err error)
	breaker        *gobreaker.CircuitBreaker
	tracer         trace.Tracer
	log            *logger.Logger
}

// New creates a client for endpoint
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		http:         &http.Client{},
		timeout:      30 * time.Second,
		interceptors: []Interceptor{BearerAuth()},
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.StdLogger()
	}
	return c
}

// Endpoint returns the API URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do sends req and decodes its data into out, which may be nil. There is no
// response cache and no request coalescing: every call hits the network.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	if req == nil || req.Query == "" {
		return ecode.Validation("graphql: empty query", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "graphql."+req.name(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", req.name()),
			attribute.String("http.url", c.endpoint),
		),
	)
	defer span.End()

	start := time.Now()
	var err error
	if c.breaker != nil {
		_, err = c.breaker.Execute(func() (any, error) {
			return nil, c.do(ctx, req, out)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &ecode.Error{
				Code:    ecode.ServiceUnavailable,
				Kind:    ecode.KindNetwork,
				Message: ecode.Text(ecode.ServiceUnavailable),
				Err:     err,
			}
		}
	} else {
		err = c.do(ctx, req, out)
	}

	fields := logrus.Fields{
		"operation": req.name(),
		"duration":  time.Since(start).String(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ecode.Message(err))
		span.SetAttributes(attribute.String("error.kind", ecode.KindOf(err).String()))
		fields["kind"] = ecode.KindOf(err).String()
		c.log.WithFields(ctx, fields).WithError(err).Warn("graphql request failed")

		if ecode.IsAuthorization(err) && c.onUnauthorized != nil && !req.credentials {
			c.onUnauthorized(ctx, err)
		}
		return err
	}

	span.SetStatus(codes.Ok, "")
	c.log.WithFields(ctx, fields).Debug("graphql request")
	return nil
}

func (c *Client) do(ctx context.Context, req *Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("graphql: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("graphql: build request: %w", err)
	}
	httpReq.Header.Set(consts.ContentTypeHeader, consts.JSONContentType)
	httpReq.Header.Set("Accept", consts.JSONContentType)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	var sess structs.Session
	if c.session != nil {
		sess = c.session.Current(ctx)
	}
	for _, intercept := range c.interceptors {
		if httpReq, err = intercept(httpReq, sess); err != nil {
			return fmt.Errorf("graphql: interceptor: %w", err)
		}
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return transportError(ctx, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return transportError(ctx, err)
	}

	return decode(res.StatusCode, raw, out)
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ecode.Timeout(err)
	}
	return ecode.Network(err)
}

// decode classifies the response. GraphQL errors win over the HTTP status
// because servers report bad input as 400 with an errors array.
func decode(status int, raw []byte, out any) error {
	var env response
	jsonErr := json.Unmarshal(raw, &env)

	if jsonErr == nil && len(env.Errors) > 0 {
		return classify(status, env.Errors)
	}

	switch {
	case status == http.StatusUnauthorized:
		return ecode.Authorization(ecode.TokenExpired, "")
	case status == http.StatusForbidden:
		return ecode.Authorization(ecode.AccessDenied, "")
	case status < 200 || status > 299:
		return ecode.Server(statusCode(status), fmt.Sprintf("server responded %d %s", status, http.StatusText(status)))
	case jsonErr != nil:
		return ecode.Server(ecode.ServerErr, fmt.Sprintf("malformed response: %v", jsonErr))
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return ecode.Server(ecode.ServerErr, fmt.Sprintf("unexpected response shape: %v", err))
	}
	return nil
}

func statusCode(status int) int {
	switch status {
	case http.StatusNotFound:
		return ecode.NotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return ecode.ServiceUnavailable
	case http.StatusGatewayTimeout:
		return ecode.Deadline
	case http.StatusBadRequest:
		return ecode.RequestErr
	}
	return ecode.ServerErr
}

func classify(status int, errs []Error) error {
	first := errs[0].Message

	for _, e := range errs {
		switch e.Code() {
		case "UNAUTHENTICATED":
			return ecode.Authorization(ecode.TokenExpired, e.Message)
		case "FORBIDDEN":
			return ecode.Authorization(ecode.AccessDenied, e.Message)
		}
	}
	if status == http.StatusUnauthorized {
		return ecode.Authorization(ecode.TokenExpired, first)
	}
	if status == http.StatusForbidden {
		return ecode.Authorization(ecode.AccessDenied, first)
	}

	fields := map[string]string{}
	validation := false
	for _, e := range errs {
		switch e.Code() {
		case "BAD_USER_INPUT", "GRAPHQL_VALIDATION_FAILED", "GRAPHQL_PARSE_FAILED":
			validation = true
			if f := e.Field(); f != "" {
				if _, seen := fields[f]; !seen {
					fields[f] = e.Message
				}
			}
		}
	}
	if validation {
		return ecode.Validation(first, fields)
	}

	if status >= 500 {
		return ecode.Server(statusCode(status), first)
	}
	return ecode.Server(ecode.ServerErr, first)
}
