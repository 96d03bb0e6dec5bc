// Package repository keeps the current roster snapshot and refreshes it
// from a source.
package repository

import (
	"context"

	"github.com/okian/cageside/internal/domain/roster"
)

// Store provides read access to the current roster snapshot.
type Store interface {
	// Current returns the published snapshot, or nil before the first load.
	Current() *roster.Snapshot
	// Refresh reloads from the source and publishes the result. On failure
	// the previous snapshot stays current.
	Refresh(ctx context.Context) (*roster.Snapshot, error)
}
