// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks delta records before they enter a container or
// the remote change log.
//
// The same [Validator] guards both ends of the protocol: the edit-capture
// path rejects malformed local edits before they are queued, and the server
// rejects uploaded records per record instead of failing the whole batch.
package validators

import "context"

// Validator validates obj, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
