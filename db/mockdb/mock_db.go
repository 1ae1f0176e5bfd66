package mockdb

import (
	"context"
	"time"

	"github.com/mww/fantasy_basketball/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) ReplaceStats(ctx context.Context, records []model.StatRecord) error {
	args := db.Called(ctx, records)
	return args.Error(0)
}

func (db *DB) ListStats(ctx context.Context) ([]model.StatRecord, error) {
	args := db.Called(ctx)

	var r []model.StatRecord
	if args.Get(0) != nil {
		r = args.Get(0).([]model.StatRecord)
	}
	return r, args.Error(1)
}

func (db *DB) LastImported(ctx context.Context) (time.Time, error) {
	args := db.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (db *DB) Close() {
	db.Called()
}
