package app

import "fmt"

type RequestErrorCode string

const (
	RequestErrInvalidCourse RequestErrorCode = "INVALID_COURSE"
	RequestErrInvalidUser   RequestErrorCode = "INVALID_USER"
	RequestErrInvalidGroup  RequestErrorCode = "INVALID_GROUP"
	RequestErrNoAction      RequestErrorCode = "NO_ACTION"
)

// RequestError reports a request the use case refuses to run.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewRequestError(code RequestErrorCode, format string, args ...any) *RequestError {
	return &RequestError{Code: code, Message: fmt.Sprintf(format, args...)}
}
