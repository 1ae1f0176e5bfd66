package controller

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	"github.com/mww/fantasy_basketball/model"
)

// Rank scores every record and assigns overall and position ranks. Players
// with the same score keep their input order. If any record fails to score
// no ranking is returned.
func Rank(records []model.StatRecord, table model.ScoringTable) ([]model.RankedPlayer, error) {
	ranked := make([]model.RankedPlayer, 0, len(records))
	for _, r := range records {
		pts, err := FantasyPoints(r, table)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, model.RankedPlayer{
			Name:     r.Name(),
			Position: r.Position(),
			Team:     r.Team(),
			Age:      r.Age(),
			Points:   pts,
		})
	}

	// Must be a stable sort, input order is the only tie breaker.
	slices.SortStableFunc(ranked, func(a, b model.RankedPlayer) int {
		return cmp.Compare(b.Points, a.Points)
	})

	groups := make(map[model.Position][]int)
	for i := range ranked {
		ranked[i].OverallRank = i + 1
		pos := ranked[i].Position
		groups[pos] = append(groups[pos], i)
	}

	for _, idxs := range groups {
		for rank, i := range idxs {
			ranked[i].PositionRank = rank + 1
		}
	}

	return ranked, nil
}

// Reload re-runs the whole pipeline and replaces the current rankings. If
// anything fails the previous rankings are kept.
func (c *controller) Reload(ctx context.Context) error {
	records, err := c.loadRecords(ctx)
	if err != nil {
		return err
	}
	return c.update(ctx, records, c.csvPath != "")
}

// Import ranks the stats read from r (CSV with a header row), saves them and
// replaces the current rankings.
func (c *controller) Import(ctx context.Context, r io.Reader) error {
	records, err := ReadStats(r)
	if err != nil {
		return err
	}
	return c.update(ctx, records, true)
}

func (c *controller) update(ctx context.Context, records []model.StatRecord, save bool) error {
	start := c.clock.Now()

	ranked, err := Rank(records, c.scoring)
	if err != nil {
		return fmt.Errorf("error ranking players: %w", err)
	}

	if save {
		if err := c.db.ReplaceStats(ctx, records); err != nil {
			return fmt.Errorf("error saving player stats: %w", err)
		}
	}

	c.mu.Lock()
	c.ranked = ranked
	c.loadedAt = c.clock.Now()
	c.mu.Unlock()

	log.Printf("rank players finished, %d players, took %v", len(ranked), c.clock.Now().Sub(start))
	return nil
}

func (c *controller) Rankings(_ context.Context, pos model.Position) []model.RankedPlayer {
	ranked := c.snapshot()
	if pos == model.POS_UNKNOWN {
		return ranked
	}

	results := make([]model.RankedPlayer, 0, 16)
	for _, p := range ranked {
		if p.Position == pos {
			results = append(results, p)
		}
	}
	return results
}

func (c *controller) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

func (c *controller) loadRecords(ctx context.Context) ([]model.StatRecord, error) {
	if c.csvPath != "" {
		return LoadStats(c.csvPath)
	}

	records, err := c.db.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading player stats from db: %w", err)
	}
	if imported, err := c.db.LastImported(ctx); err == nil {
		log.Printf("read %d player stats from db, imported at %v", len(records), imported)
	}
	return records, nil
}

// snapshot returns a copy of the current rankings so callers can't modify them.
func (c *controller) snapshot() []model.RankedPlayer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.ranked)
}
