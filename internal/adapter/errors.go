package adapter

import "errors"

// Transport errors. Response-status errors wrap the server's message body.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("gone")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrServerUnavailable   = errors.New("server unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected response status")
	ErrTransport           = errors.New("transport failure")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrTokenExpired        = errors.New("access token expired")
	ErrSchemaChangedMidway = errors.New("schema changed between schema probe and snapshot")
)
