// Package result carries classified outcomes of business operations: either
// a value or a failure, each with the HTTP status it should be reported with.
package result

import (
	"net/http"

	"smdb/errs"
)

const internalMessage = "Internal server error"

// Failure is the error case of a Result.
type Failure struct {
	Message string
	Status  int
}

func (f Failure) Error() string {
	return f.Message
}

// Code returns the application error code matching the failure status.
func (f Failure) Code() string {
	switch f.Status {
	case http.StatusBadRequest:
		return errs.EINVALID
	case http.StatusNotFound:
		return errs.ENOTFOUND
	case http.StatusConflict:
		return errs.ECONFLICT
	case http.StatusUnauthorized:
		return errs.EUNAUTHORIZED
	case http.StatusNotImplemented:
		return errs.ENOTIMPLEMENTED
	}
	return errs.EINTERNAL
}

// Result holds exactly one of a value or a Failure. Build it with OK, Fail
// or FromError; the zero value reads as a success with the zero T and no
// status.
type Result[T any] struct {
	value   T
	failure *Failure
	status  int
}

// OK returns a successful result.
func OK[T any](value T, status int) Result[T] {
	return Result[T]{value: value, status: status}
}

// Fail returns a failed result.
func Fail[T any](message string, status int) Result[T] {
	return Result[T]{
		failure: &Failure{Message: message, Status: status},
		status:  status,
	}
}

// FromError classifies err by its application error code. Messages of
// internal errors are never exposed.
func FromError[T any](err error) Result[T] {
	status := statusOf(errs.ErrorCode(err))
	if status == http.StatusInternalServerError {
		return Fail[T](internalMessage, status)
	}
	return Fail[T](errs.ErrorMessage(err), status)
}

func (r Result[T]) IsSuccess() bool {
	return r.failure == nil
}

func (r Result[T]) IsFailure() bool {
	return r.failure != nil
}

func (r Result[T]) Status() int {
	return r.status
}

// Value returns the success value. ok is false on failures.
func (r Result[T]) Value() (value T, ok bool) {
	if r.failure != nil {
		return value, false
	}
	return r.value, true
}

// Failure returns the failure. ok is false on successes.
func (r Result[T]) Failure() (Failure, bool) {
	if r.failure == nil {
		return Failure{}, false
	}
	return *r.failure, true
}

// Err returns the failure as an error, or nil.
func (r Result[T]) Err() error {
	if r.failure == nil {
		return nil
	}
	return *r.failure
}

func statusOf(code string) int {
	switch code {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
