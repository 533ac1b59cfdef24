package cache

import "errors"

var (
	ErrContainerPinned = errors.New("container is pinned")
	ErrInvalidLayerID  = errors.New("invalid layer id")
)
