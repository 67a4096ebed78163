package weberr

import (
	"net/http"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func NewError(err error, msg string, status int, opts ...Opt) error {
	return newError(err, &ErrorResponse{Error: msg}, status, opts...)
}

func newError(err error, body *ErrorResponse, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(body, status))

	return Wrap(e, opts...)
}

func NotFound(err error, msg string, opts ...Opt) error {
	if msg == "" {
		msg = "the resource could not be found"
	}
	return NewError(err, msg, http.StatusNotFound, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"the server encountered a problem and could not process your request",
		http.StatusInternalServerError,
		opts...,
	)
}

func Unavailable(err error, opts ...Opt) error {
	return NewError(
		err,
		"the document store is not available",
		http.StatusServiceUnavailable,
		opts...,
	)
}

func BadRequest(err error, msg string, opts ...Opt) error {
	if msg == "" {
		msg = "bad request"
	}
	return NewError(err, msg, http.StatusBadRequest, opts...)
}

// Unprocessable reports a schema violation together with its per-field detail.
func Unprocessable(err error, fields map[string]string, opts ...Opt) error {
	body := &ErrorResponse{Error: "validation failed", Fields: fields}
	return newError(err, body, http.StatusUnprocessableEntity, opts...)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(
		err,
		"rate limit exceeded",
		http.StatusTooManyRequests,
		opts...,
	)
}
