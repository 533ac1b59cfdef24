// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors of the HTTP layer. Callers can match them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrMissingQueryParam is returned when a required query parameter is
	// absent.
	ErrMissingQueryParam = errors.New("missing query parameter")

	// ErrInvalidQueryParam is returned when a query parameter is not an
	// integer.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrInvalidRequestBody is returned when a request body cannot be read
	// or decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrUnknownOperation is returned by the control API for an edit whose
	// op is not insert, update or delete.
	ErrUnknownOperation = errors.New("unknown edit operation")
)
