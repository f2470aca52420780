package adapter

import "errors"

// Transport-agnostic sentinel errors produced by mapHTTPError. Callers
// match against them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("share no longer available")
	ErrBadGateway          = errors.New("upstream failure")
	ErrInternalServerError = errors.New("internal server error")
)
