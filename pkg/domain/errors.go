package domain

import "errors"

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrUnknownArchetype is returned when a pattern ID is not in the registry.
var ErrUnknownArchetype = errors.New("unknown archetype")
