package graphql

import (
	"encoding/json"
)

// Request is one GraphQL operation
type Request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`

	credentials bool
}

// NewRequest builds a request for a named operation
func NewRequest(operation, query string) *Request {
	return &Request{OperationName: operation, Query: query}
}

// Var sets a variable and returns the request for chaining
func (r *Request) Var(key string, value any) *Request {
	if r.Variables == nil {
		r.Variables = make(map[string]any)
	}
	r.Variables[key] = value
	return r
}

// Credentials marks an operation that authenticates with credentials rather
// than the session token. Its authorization errors mean bad credentials, so
// the unauthorized hook is not run for it.
func (r *Request) Credentials() *Request {
	r.credentials = true
	return r
}

// name is used for logs and span names
func (r *Request) name() string {
	if r.OperationName != "" {
		return r.OperationName
	}
	return "anonymous"
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Error is one entry of a GraphQL errors array
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code
func (e Error) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// Field returns the input field the error refers to: extensions.field, or
// the last path element.
func (e Error) Field() string {
	if f, ok := e.Extensions["field"].(string); ok && f != "" {
		return f
	}
	for i := len(e.Path) - 1; i >= 0; i-- {
		if s, ok := e.Path[i].(string); ok {
			return s
		}
	}
	return ""
}
