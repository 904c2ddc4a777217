package mockdb

import (
	"context"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	args := db.Called(ctx)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}

	return r, args.Error(1)
}

func (db *DB) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	args := db.Called(ctx, name)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) AddPlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) DeletePlayer(ctx context.Context, name string) error {
	args := db.Called(ctx, name)
	return args.Error(0)
}

func (db *DB) Close() {
	db.Called()
}
