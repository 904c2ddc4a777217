package controller

import (
	"context"
	"strings"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
)

func (c *controller) ListPlayers(ctx context.Context) (map[model.Position][]model.Player, error) {
	players, err := c.db.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return groupByPosition(players), nil
}

func (c *controller) AddPlayer(ctx context.Context, name, position string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	pos := model.ParsePosition(strings.TrimSpace(position))
	if pos == model.POS_UNKNOWN {
		return nil, ErrInvalidPosition
	}

	p := &model.Player{
		Name:     name,
		Position: pos,
	}
	if err := c.db.AddPlayer(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *controller) DeletePlayer(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	return c.db.DeletePlayer(ctx, name)
}

func groupByPosition(players []model.Player) map[model.Position][]model.Player {
	grouped := make(map[model.Position][]model.Player, len(model.AllPositions))
	for _, pos := range model.AllPositions {
		grouped[pos] = make([]model.Player, 0, 4)
	}
	for _, p := range players {
		if _, ok := grouped[p.Position]; !ok {
			continue
		}
		grouped[p.Position] = append(grouped[p.Position], p)
	}
	return grouped
}
