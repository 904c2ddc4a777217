package controller

import (
	"context"
	"errors"

	"github.com/JTH10/fantasy-football-rankings-webapp/db"
	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/fantasypros"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/nfl"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/rotopat"
	"github.com/itbasis/go-clock"
)

var (
	ErrInvalidWeek     error = errors.New("week must be between 1 and 17")
	ErrInvalidPosition error = errors.New("position must be one of QB, WR, RB, TE, K, DEF")
	ErrNameRequired    error = errors.New("player name is required")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// ListPlayers returns the roster grouped by position. Every known
	// position is present in the result, possibly with an empty list.
	ListPlayers(ctx context.Context) (map[model.Position][]model.Player, error)
	// AddPlayer validates and saves a new roster entry, returning the saved
	// player. Returns db.ErrPlayerExists for duplicate names.
	AddPlayer(ctx context.Context, name, position string) (*model.Player, error)
	// DeletePlayer removes a roster entry by name. Returns
	// db.ErrPlayerNotFound if the player isn't on the roster.
	DeletePlayer(ctx context.Context, name string) error

	// GetRankings fetches the week's rankings from every source, matches
	// them against the roster and averages them per player. A source that
	// fails to fetch simply contributes nothing.
	GetRankings(ctx context.Context, week int) (map[model.Position][]model.RankedPlayer, error)
	// CurrentWeek is the week of the NFL season right now, clamped to 1-17.
	CurrentWeek() int
}

type controller struct {
	clock       clock.Clock
	db          db.DB
	nfl         nfl.Client
	rotopat     rotopat.Client
	fantasypros fantasypros.Client
}

func New(clock clock.Clock, db db.DB, nfl nfl.Client, rotopat rotopat.Client, fantasypros fantasypros.Client) (C, error) {
	c := &controller{
		clock:       clock,
		db:          db,
		nfl:         nfl,
		rotopat:     rotopat,
		fantasypros: fantasypros,
	}
	return c, nil
}

func (c *controller) CurrentWeek() int {
	return model.CurrentWeek(c.clock)
}
