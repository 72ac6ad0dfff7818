package gtm

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ErrorDetail describes a failed remote call. Code is the HTTP status when
// the API reported one.
type ErrorDetail struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

func (d ErrorDetail) Error() string {
	return d.Message
}

// Result is either a value or the detail of the fault that prevented it
type Result[T any] struct {
	value  T
	detail *ErrorDetail
}

// Ok wraps a successful value
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail converts err into an error result
func Fail[T any](err error) Result[T] {
	detail := detailFrom(err)
	return Result[T]{detail: &detail}
}

// OK reports whether the call succeeded
func (r Result[T]) OK() bool {
	return r.detail == nil
}

// Value returns the value, or the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Detail returns the fault detail, or a zero detail on success
func (r Result[T]) Detail() ErrorDetail {
	if r.detail == nil {
		return ErrorDetail{}
	}
	return *r.detail
}

// Err returns the fault as an error, or nil on success
func (r Result[T]) Err() error {
	if r.detail == nil {
		return nil
	}
	return *r.detail
}

func detailFrom(err error) ErrorDetail {
	if err == nil {
		return ErrorDetail{Message: "unknown error"}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error()
		}
		return ErrorDetail{Code: apiErr.Code, Message: message}
	}

	return ErrorDetail{Message: err.Error()}
}

// mapResult converts the value of a successful result
func mapResult[T, U any](r Result[T], convert func(T) (U, error)) Result[U] {
	if !r.OK() {
		return Result[U]{detail: r.detail}
	}
	converted, err := convert(r.value)
	if err != nil {
		return Fail[U](fmt.Errorf("decode response: %w", err))
	}
	return Ok(converted)
}
