// Package state issues the opaque state value attached to authorize
// redirects. Values are not stored or verified here; matching them is left
// to the provider.
package state

import (
	"strings"

	"github.com/google/uuid"
)

// Generator issues state values.
type Generator struct {
	newID func() uuid.UUID
}

// NewGenerator creates a Generator backed by random (v4) UUIDs.
func NewGenerator() *Generator {
	return &Generator{newID: uuid.New}
}

// New returns a fresh state value: 32 lowercase hex characters.
func (g *Generator) New() string {
	return strings.ReplaceAll(g.newID().String(), "-", "")
}
