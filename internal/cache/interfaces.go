// Package cache manages the directory holding one container file per offline
// layer.
//
// Attached layers are pinned and never evicted. Unpinned containers are
// removed by [Dir.Sweep] once they exceed the configured age, then in
// least-recently-used order until the directory fits its size budget.
package cache

import "context"

// Location is the container storage location.
type Location interface {
	// ContainerPath is where the container of layerID lives.
	ContainerPath(layerID string) string
	// Pin protects a layer's container from eviction. Pins nest.
	Pin(layerID string)
	// Unpin releases one Pin.
	Unpin(layerID string)
	// Remove deletes the container file and its journal files.
	Remove(layerID string) error
	// Sweep evicts unpinned containers and returns the evicted layer ids.
	Sweep(ctx context.Context) ([]string, error)
}
