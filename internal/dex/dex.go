// =============================
// File: internal/dex/dex.go
// =============================
package dex

import (
	"context"
)

// DEX is the narrow capability interface over the external exchange engines.
// One implementation exists per concrete engine (bonding curve, AMM); the
// runner selects an implementation by configuration, not by inheritance.
type DEX interface {
	// GetName returns the engine name.
	GetName() string
	// Execute runs the operation described by the task as one atomic unit.
	Execute(ctx context.Context, task *Task) error
}
