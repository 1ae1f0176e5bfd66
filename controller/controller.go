package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_basketball/db"
	"github.com/mww/fantasy_basketball/model"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Reload loads the stats, ranks every player and replaces the current rankings.
	Reload(ctx context.Context) error
	// Import ranks the stats read from r, in the same CSV format as the stats
	// file, and replaces the current rankings.
	Import(ctx context.Context, r io.Reader) error
	// Rankings returns all ranked players, or only those at pos if it isn't
	// model.POS_UNKNOWN.
	Rankings(ctx context.Context, pos model.Position) []model.RankedPlayer
	// Search by name. The query may also have pos: and team: filters,
	// e.g. "james pos:SF team:LAL".
	Search(ctx context.Context, query string) ([]model.RankedPlayer, error)
	Compare(ctx context.Context, nameA, nameB string) (*model.Comparison, error)
	// PlayerNames lists all player names in ranked order.
	PlayerNames(ctx context.Context) []string
	LoadedAt() time.Time
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	csvPath string
	scoring model.ScoringTable

	mu       sync.RWMutex
	ranked   []model.RankedPlayer
	loadedAt time.Time
}

// New creates a controller. Stats are read from csvPath and saved to the
// database if one is given. With an empty csvPath the stats from the last
// import are read from the database instead. database may be nil.
func New(clock clock.Clock, database db.DB, csvPath string) (C, error) {
	if database == nil {
		if csvPath == "" {
			return nil, errors.New("a stats CSV file or a database is required")
		}
		database = &nilDB{}
	}

	c := &controller{
		clock:   clock,
		db:      database,
		csvPath: csvPath,
		scoring: model.DefaultScoringTable(),
	}
	return c, nil
}

// nilDB exists so that the controller always has a db and doesn't need a nil
// check every time stats are saved.
type nilDB struct{}

func (*nilDB) ReplaceStats(_ context.Context, _ []model.StatRecord) error {
	return nil
}

func (*nilDB) ListStats(_ context.Context) ([]model.StatRecord, error) {
	return nil, db.ErrNoStats
}

func (*nilDB) LastImported(_ context.Context) (time.Time, error) {
	return time.Time{}, db.ErrNoStats
}

func (*nilDB) Close() {}
