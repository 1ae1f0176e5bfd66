package mockcontroller

import (
	"context"
	"io"
	"time"

	"github.com/mww/fantasy_basketball/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) Reload(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) Rankings(ctx context.Context, pos model.Position) []model.RankedPlayer {
	args := c.Called(ctx, pos)

	var r []model.RankedPlayer
	if args.Get(0) != nil {
		r = args.Get(0).([]model.RankedPlayer)
	}
	return r
}

func (c *C) Search(ctx context.Context, query string) ([]model.RankedPlayer, error) {
	args := c.Called(ctx, query)

	var r []model.RankedPlayer
	if args.Get(0) != nil {
		r = args.Get(0).([]model.RankedPlayer)
	}
	return r, args.Error(1)
}

func (c *C) Compare(ctx context.Context, nameA, nameB string) (*model.Comparison, error) {
	args := c.Called(ctx, nameA, nameB)

	var r *model.Comparison
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Comparison)
	}
	return r, args.Error(1)
}

func (c *C) PlayerNames(ctx context.Context) []string {
	args := c.Called(ctx)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r
}

func (c *C) LoadedAt() time.Time {
	args := c.Called()
	return args.Get(0).(time.Time)
}

func (c *C) Import(ctx context.Context, r io.Reader) error {
	args := c.Called(ctx, r)
	return args.Error(0)
}
