// Package server runs an HTTP handler with signal handling and graceful
// shutdown. Both binaries use it: the Web GIS serves the delta API and the
// sync client serves its control API.
package server
