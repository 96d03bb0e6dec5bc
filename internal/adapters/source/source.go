// Package source loads raw fighter tables from the crawler's CSV exports.
package source

import (
	"context"
	"time"

	"github.com/okian/cageside/internal/domain/fighter"
)

// Batch is one load of raw records.
type Batch struct {
	// Source identifies the file the records came from.
	Source string
	// ModTime is the file's modification time. Unchanged files are skipped on refresh.
	ModTime time.Time
	Records []fighter.RawRecord
}

// Loader produces a Batch.
type Loader interface {
	Load(ctx context.Context) (Batch, error)
}
