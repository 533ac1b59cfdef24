// Package config provides configuration loading, merging, and validation
// for the sync client and the reference Web GIS server.
//
// Configuration is assembled from multiple sources; for every scalar field
// the first source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file (-c / CONFIG)
//
// Layer seeds are only read from the config file.
//
// The entry points are [GetClientConfig] and [GetServerConfig]. Both apply
// defaults for unset tuning knobs and validate the resulting view.
package config
