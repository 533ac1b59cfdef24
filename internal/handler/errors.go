// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned when a binary has no listen address or
// no services to serve. It is a fatal misconfiguration at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
