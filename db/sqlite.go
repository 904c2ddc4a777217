package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/itbasis/go-clock"
	_ "modernc.org/sqlite"
)

// sqliteDB is the embedded fallback store, used when no Postgres connection
// string is configured. It keeps the same players table in a single local
// file and relies on sqlite's own locking for concurrent writes.
type sqliteDB struct {
	db    *sql.DB
	clock clock.Clock
}

func newSQLiteDB(ctx context.Context, path string, clock clock.Clock) (DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite db at %s: %w", path, err)
	}

	const createTable = `CREATE TABLE IF NOT EXISTS players (
			name     TEXT PRIMARY KEY,
			position TEXT NOT NULL,
			created  TEXT NOT NULL
		)`
	if _, err := sqldb.ExecContext(ctx, createTable); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("error creating players table: %w", err)
	}

	const createNameIndex = `CREATE UNIQUE INDEX IF NOT EXISTS players_name_lower_idx ON players (lower(name))`
	if _, err := sqldb.ExecContext(ctx, createNameIndex); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("error creating players name index: %w", err)
	}

	db := &sqliteDB{db: sqldb, clock: clock}
	if err := seedDefaultRoster(ctx, db); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("error seeding default roster: %w", err)
	}
	return db, nil
}

func (db *sqliteDB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	const query = `SELECT name, position, created FROM players ORDER BY name`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing players: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 16)
	for rows.Next() {
		var p model.Player
		var pos, created string
		if err := rows.Scan(&p.Name, &pos, &created); err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		p.Position = model.ParsePosition(pos)
		p.Created, _ = time.Parse(time.RFC3339, created)
		results = append(results, p)
	}

	return results, rows.Err()
}

func (db *sqliteDB) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	const query = `SELECT name, position, created FROM players WHERE lower(name)=lower(?)`

	var p model.Player
	var pos, created string
	err := db.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &pos, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", name, err)
	}
	p.Position = model.ParsePosition(pos)
	p.Created, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

func (db *sqliteDB) AddPlayer(ctx context.Context, p *model.Player) error {
	// sqlite primary keys are case-sensitive, so check for an existing entry
	// with any casing first.
	if _, err := db.GetPlayer(ctx, p.Name); err == nil {
		return ErrPlayerExists
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return err
	}

	const query = `INSERT INTO players (name, position, created) VALUES (?, ?, ?)`

	created := db.clock.Now().UTC().Format(time.RFC3339)
	if _, err := db.db.ExecContext(ctx, query, p.Name, string(p.Position), created); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrPlayerExists
		}
		return fmt.Errorf("error inserting player(%s): %w", p.Name, err)
	}
	return nil
}

func (db *sqliteDB) DeletePlayer(ctx context.Context, name string) error {
	const query = `DELETE FROM players WHERE lower(name)=lower(?)`

	res, err := db.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("error deleting player(%s): %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result for %s: %w", name, err)
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *sqliteDB) Close() {
	db.db.Close()
}
