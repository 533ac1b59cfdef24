// Package http implements the HTTP transport of both binaries.
//
// [Handler] serves the Web GIS delta API of the reference server: schema and
// versioning probes, GeoJSON snapshots, snappy-framed delta pages and
// uploads, plus admin endpoints that reconfigure layer versioning.
// [ControlHandler] serves the sync client's host control API: layer
// lifecycle, sync sessions, edit capture, a WebSocket progress stream and
// Prometheus metrics.
//
// Tracing, access logging, compression, bearer authentication and body
// integrity checks are middleware shared by both routers.
package http
