package errors

import (
	"maps"
	"net/http"
)

// Code is the stable machine-readable identifier clients branch on.
type Code string

// Error codes
const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeForbidden     Code = "FORBIDDEN"
	CodeBadRequest    Code = "BAD_REQUEST"
	CodeConflict      Code = "CONFLICT"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeInternal      Code = "INTERNAL"
)

// Domain tags the entity family an error belongs to. It is used for logging
// and filtering; transport mapping only looks at the code.
type Domain string

const (
	DomainGeneric Domain = ""
	DomainUser    Domain = "user"
	DomainTask    Domain = "task"
	DomainProject Domain = "project"
)

// Context holds identifiers and parameters attached to a failure.
// It is logged and returned verbatim, so never put secrets in it.
type Context map[string]any

// Error is a domain failure. Package-level values declared with New act as
// kinds; With and WithMessage derive per-call instances that still match
// their kind through errors.Is.
type Error struct {
	Code    Code    `json:"code"`
	Message string  `json:"message"`
	Context Context `json:"context"`

	Domain Domain `json:"-"`
	Status int    `json:"-"`

	kind *Error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the kind e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// New declares an error kind with the default status for its code.
func New(domain Domain, code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Domain:  domain,
		Status:  StatusFor(code),
	}
}

// With returns an instance of the kind carrying ctx.
func (e *Error) With(ctx Context) *Error {
	return e.WithMessage("", ctx)
}

// WithMessage returns an instance of the kind with the message overridden
// (an empty message keeps the default) and ctx attached.
func (e *Error) WithMessage(message string, ctx Context) *Error {
	cp := *e
	cp.kind = e.root()
	if message != "" {
		cp.Message = message
	}
	if ctx != nil {
		cp.Context = maps.Clone(ctx)
	}
	return &cp
}

// StatusFor maps a code to its transport status.
func StatusFor(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors
var (
	ErrNotFound      = New(DomainGeneric, CodeNotFound, "Resource not found")
	ErrAlreadyExists = New(DomainGeneric, CodeAlreadyExists, "Resource already exists")
	ErrForbidden     = New(DomainGeneric, CodeForbidden, "Action not allowed")
	ErrBadRequest    = New(DomainGeneric, CodeBadRequest, "Bad request")
	ErrConflict      = New(DomainGeneric, CodeConflict, "Conflict with current state")
	ErrUnauthorized  = New(DomainGeneric, CodeUnauthorized, "Authentication required or failed")
	ErrInternal      = New(DomainGeneric, CodeInternal, "An internal error occurred")
)
