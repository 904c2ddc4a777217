package db

import (
	"context"
	"errors"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/itbasis/go-clock"
)

var (
	ErrPlayerNotFound error = errors.New("player not found")
	ErrPlayerExists   error = errors.New("player already exists")
)

type DB interface {
	// ListPlayers returns the full roster ordered by name.
	ListPlayers(ctx context.Context) ([]model.Player, error)
	// GetPlayer looks a player up by name, case-insensitively.
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	// AddPlayer inserts a new roster entry. Returns ErrPlayerExists if a
	// player with the same name (ignoring case) is already present.
	AddPlayer(ctx context.Context, p *model.Player) error
	// DeletePlayer removes a player by name, case-insensitively. Returns
	// ErrPlayerNotFound if no such player exists.
	DeletePlayer(ctx context.Context, name string) error

	Close()
}

// New picks the store implementation from the configuration: a non-empty
// connString selects Postgres, otherwise a local SQLite file at sqlitePath
// is used. A fresh, empty store is seeded with model.DefaultRoster.
func New(ctx context.Context, connString, sqlitePath string, clock clock.Clock) (DB, error) {
	if connString != "" {
		return newPostgresDB(ctx, connString, clock)
	}
	return newSQLiteDB(ctx, sqlitePath, clock)
}

func seedDefaultRoster(ctx context.Context, db DB) error {
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(players) > 0 {
		return nil
	}
	for _, p := range model.DefaultRoster {
		p := p
		if err := db.AddPlayer(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
