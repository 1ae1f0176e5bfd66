package db

import (
	"context"
	"time"

	"github.com/mww/fantasy_basketball/model"
)

type DB interface {
	// Replace all of the stored player stats with records. Either all of the
	// records are saved or none are.
	ReplaceStats(ctx context.Context, records []model.StatRecord) error
	// Returns the stored stats in the same order they were saved.
	ListStats(ctx context.Context) ([]model.StatRecord, error)
	// The time of the last call to ReplaceStats. Returns ErrNoStats if nothing has been saved.
	LastImported(ctx context.Context) (time.Time, error)
	Close()
}
