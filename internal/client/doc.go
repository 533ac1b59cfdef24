// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync daemon runtime.
//
// It wires the remote adapter, the container cache, the sync services and
// the control API into a single process lifecycle: attach the configured
// layers, run the background workers and the periodic sync job, serve the
// control API until a stop signal, then close every container.
package client
