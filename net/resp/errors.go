package resp

import (
	"net/http"

	"github.com/ncobase/newsdesk/ecode"
)

// FromError maps an error from the API or a screen to an Exception. Field
// messages of validation errors are carried in Errors.
func FromError(err error) *Exception {
	if err == nil {
		return nil
	}
	e, ok := ecode.As(err)
	if !ok {
		return InternalServer(err.Error())
	}

	r := &Exception{
		Status:  ecode.ToHTTPStatus(e.Code),
		Code:    e.Code,
		Message: ecode.Message(err),
	}
	if len(e.Fields) > 0 {
		r.Errors = e.Fields
	}
	return r
}

// Error writes err as a failure response.
func Error(w http.ResponseWriter, err error) {
	Fail(w, FromError(err))
}

// UnAuthorized indicates that the request is unauthorized.
func UnAuthorized(message string, data ...any) *Exception {
	return newResponse(http.StatusUnauthorized, ecode.NoLogin, message, data...)
}

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NotFound, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}
