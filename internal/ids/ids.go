// Package ids produces identifiers for stored records.
package ids

import "github.com/google/uuid"

// Generator returns a new opaque, unique identifier on every call.
type Generator interface {
	New() string
}

// UUID generates random (version 4) UUID strings.
type UUID struct{}

func (UUID) New() string {
	return uuid.New().String()
}

// Func adapts a plain function to Generator.
type Func func() string

func (f Func) New() string {
	return f()
}

// Default is the generator used when none is configured.
var Default Generator = UUID{}
