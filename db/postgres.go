package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Unique violation, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgUniqueViolation = "23505"

const createPlayersTable = `CREATE TABLE IF NOT EXISTS players (
		name     TEXT PRIMARY KEY,
		position TEXT NOT NULL,
		created  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Duplicate detection is case-insensitive, enforced by the store itself.
const createNameIndex = `CREATE UNIQUE INDEX IF NOT EXISTS players_name_lower_idx ON players (lower(name))`

func newPostgresDB(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, createPlayersTable); err != nil {
		return nil, fmt.Errorf("error creating players table: %w", err)
	}
	if _, err := pool.Exec(ctx, createNameIndex); err != nil {
		return nil, fmt.Errorf("error creating players name index: %w", err)
	}

	db := &postgresDB{pool: pool, clock: clock}
	if err := seedDefaultRoster(ctx, db); err != nil {
		return nil, fmt.Errorf("error seeding default roster: %w", err)
	}
	return db, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	const query = `SELECT name, position, created FROM players ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing players: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}

	return results, rows.Err()
}

func (db *postgresDB) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	const query = `SELECT name, position, created FROM players WHERE lower(name)=lower(@name)`

	args := pgx.NamedArgs{
		"name": name,
	}
	row := db.pool.QueryRow(ctx, query, args)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", name, err)
	}
	return p, nil
}

func (db *postgresDB) AddPlayer(ctx context.Context, p *model.Player) error {
	const query = `INSERT INTO players (name, position, created) VALUES (@name, @position, @created)`

	args := pgx.NamedArgs{
		"name":     p.Name,
		"position": string(p.Position),
		"created": pgtype.Timestamptz{
			Time:             db.clock.Now().UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
	_, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrPlayerExists
		}
		return fmt.Errorf("error inserting player(%s): %w", p.Name, err)
	}
	return nil
}

func (db *postgresDB) DeletePlayer(ctx context.Context, name string) error {
	const query = `DELETE FROM players WHERE lower(name)=lower(@name)`

	args := pgx.NamedArgs{
		"name": name,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting player(%s): %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var pos string
	var created pgtype.Timestamptz
	if err := row.Scan(&result.Name, &pos, &created); err != nil {
		return nil, err
	}

	result.Position = model.ParsePosition(pos)
	result.Created = created.Time
	return &result, nil
}
