package mockcontroller

import (
	"context"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) ListPlayers(ctx context.Context) (map[model.Position][]model.Player, error) {
	args := c.Called(ctx)

	var r map[model.Position][]model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(map[model.Position][]model.Player)
	}

	return r, args.Error(1)
}

func (c *C) AddPlayer(ctx context.Context, name, position string) (*model.Player, error) {
	args := c.Called(ctx, name, position)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (c *C) DeletePlayer(ctx context.Context, name string) error {
	args := c.Called(ctx, name)
	return args.Error(0)
}

func (c *C) GetRankings(ctx context.Context, week int) (map[model.Position][]model.RankedPlayer, error) {
	args := c.Called(ctx, week)

	var r map[model.Position][]model.RankedPlayer
	if args.Get(0) != nil {
		r = args.Get(0).(map[model.Position][]model.RankedPlayer)
	}

	return r, args.Error(1)
}

func (c *C) CurrentWeek() int {
	args := c.Called()
	return args.Int(0)
}
