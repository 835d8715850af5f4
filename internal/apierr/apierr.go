package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound         = "not_found"
	CodeInvalidLimit     = "invalid_limit"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func InvalidLimit(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidLimit, err)
}

func StoreUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStoreUnavailable, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From maps any error onto an API error, leaving typed errors untouched.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
