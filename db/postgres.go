package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mww/fantasy_basketball/model"
)

var (
	ErrNoStats error = errors.New("no player stats have been imported")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) ReplaceStats(ctx context.Context, records []model.StatRecord) error {
	const clear = `TRUNCATE player_stats, players RESTART IDENTITY`

	const insertPlayer = `INSERT INTO players (
		name,
		team,
		position,
		age,
		imported
	) VALUES (
		@name,
		@team,
		@position,
		@age,
		@imported
	) RETURNING id`

	const insertStats = `INSERT INTO player_stats (
		player,
		stats
	) VALUES (
		@playerID,
		@stats
	)`

	start := time.Now()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, clear); err != nil {
		return fmt.Errorf("error clearing player stats: %w", err)
	}

	imported := pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}

	for _, r := range records {
		var id int32
		err := tx.QueryRow(ctx, insertPlayer, namedArgsForPlayer(r, imported)).Scan(&id)
		if err != nil {
			return fmt.Errorf("error inserting player (%s): %w", r.Name(), err)
		}

		args := pgx.NamedArgs{
			"playerID": id,
			"stats":    r.Fields(),
		}
		if _, err := tx.Exec(ctx, insertStats, args); err != nil {
			return fmt.Errorf("error inserting stats for player (%s): %w", r.Name(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting player stats transaction: %w", err)
	}

	log.Printf("saved stats for %d players, took %v", len(records), time.Since(start))
	return nil
}

func (db *postgresDB) ListStats(ctx context.Context) ([]model.StatRecord, error) {
	const query = `SELECT s.stats FROM player_stats s
					JOIN players p ON p.id = s.player
					ORDER BY p.id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error running list stats query: %w", err)
	}
	defer rows.Close()

	records := make([]model.StatRecord, 0, 64)
	for rows.Next() {
		var fields map[string]string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("error scanning player stats: %w", err)
		}
		records = append(records, model.NewStatRecord(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoStats
	}
	return records, nil
}

func (db *postgresDB) LastImported(ctx context.Context) (time.Time, error) {
	const query = `SELECT max(imported) FROM players`

	var imported pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query).Scan(&imported); err != nil {
		return time.Time{}, fmt.Errorf("error reading last import time: %w", err)
	}
	if !imported.Valid {
		return time.Time{}, ErrNoStats
	}
	return imported.Time, nil
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func namedArgsForPlayer(r model.StatRecord, imported pgtype.Timestamptz) pgx.NamedArgs {
	team := r.Team()
	age := r.Age()
	return pgx.NamedArgs{
		"name": r.Name(),
		"team": sql.NullString{
			String: team,
			Valid:  team != "",
		},
		"position": &DBPosition{position: r.Position()},
		"age": sql.NullInt32{
			Int32: int32(age),
			Valid: age > 0,
		},
		"imported": imported,
	}
}

// DBPosition stores a position as its upper case label.
type DBPosition struct {
	position model.Position
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}
