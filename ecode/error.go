package ecode

import (
	"errors"
	"sort"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindValidation
	KindAuthorization
	KindAsset
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindAsset:
		return "asset"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the typed error carried from the transport up to the screens.
type Error struct {
	Code    int
	Kind    Kind
	Message string
	// Fields maps input field names to messages for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = Text(e.Code)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Network wraps a transport failure.
func Network(err error) *Error {
	return &Error{Code: NetworkErr, Kind: KindNetwork, Message: Text(NetworkErr), Err: err}
}

// Timeout wraps a deadline failure.
func Timeout(err error) *Error {
	return &Error{Code: Deadline, Kind: KindNetwork, Message: Text(Deadline), Err: err}
}

// Validation builds a validation error. When message is empty the first field
// message in key order is used.
func Validation(message string, fields map[string]string) *Error {
	if message == "" {
		message = firstFieldMessage(fields)
	}
	if message == "" {
		message = Text(ParamErr)
	}
	return &Error{Code: ParamErr, Kind: KindValidation, Message: message, Fields: fields}
}

// FieldRequired builds a validation error for one missing field.
func FieldRequired(field, message string) *Error {
	return Validation(message, map[string]string{field: message})
}

// Authorization builds an authorization error.
func Authorization(code int, message string) *Error {
	if message == "" {
		message = Text(code)
	}
	return &Error{Code: code, Kind: KindAuthorization, Message: message}
}

// Asset wraps an asset-service failure.
func Asset(message string, err error) *Error {
	if message == "" {
		message = Text(AssetErr)
	}
	return &Error{Code: AssetErr, Kind: KindAsset, Message: message, Err: err}
}

// Server builds a server error with the given message.
func Server(code int, message string) *Error {
	if message == "" {
		message = Text(code)
	}
	return &Error{Code: code, Kind: KindServer, Message: message}
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the code of err.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	if e, ok := As(err); ok {
		return e.Code
	}
	return ServerErr
}

// Message returns the inline message a screen shows for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

func IsNetwork(err error) bool       { return KindOf(err) == KindNetwork }
func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
func IsAsset(err error) bool         { return KindOf(err) == KindAsset }

func firstFieldMessage(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.TrimSpace(fields[keys[0]])
}
