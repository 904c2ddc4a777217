package controller

import (
	"cmp"
	"context"
	"log"
	"math"
	"slices"
	"sync"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"golang.org/x/sync/errgroup"
)

// sourceFetch is the common shape of the three ranking site clients.
type sourceFetch func(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error)

func (c *controller) GetRankings(ctx context.Context, week int) (map[model.Position][]model.RankedPlayer, error) {
	if !model.ValidWeek(week) {
		return nil, ErrInvalidWeek
	}

	players, err := c.db.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	roster := groupByPosition(players)

	sources := map[string]sourceFetch{
		"nfl":         c.nfl.WeeklyRankings,
		"rotopat":     c.rotopat.WeeklyRankings,
		"fantasypros": c.fantasypros.WeeklyRankings,
	}

	// Fetch every (source, position) pair concurrently. A failed fetch is
	// logged and that source simply contributes nothing for that position.
	var mu sync.Mutex
	lists := make([][]model.SourceRank, 0, len(sources)*len(model.AllPositions))

	g, gctx := errgroup.WithContext(ctx)
	for _, pos := range model.AllPositions {
		if len(roster[pos]) == 0 {
			continue
		}
		for name, fetch := range sources {
			pos, name, fetch := pos, name, fetch
			g.Go(func() error {
				ranks, err := fetch(gctx, pos, week)
				if err != nil {
					log.Printf("error fetching %s rankings for %s week %d: %v", name, pos, week, err)
					return nil
				}
				filtered := matchRoster(ranks, roster[pos])
				mu.Lock()
				lists = append(lists, filtered)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := aggregate(lists...)

	// Every position shows up in the response, even when nothing ranked.
	for _, pos := range model.AllPositions {
		if result[pos] == nil {
			result[pos] = make([]model.RankedPlayer, 0)
		}
	}
	return result, nil
}

// matchRoster filters one source's list down to the players actually on the
// roster for that position. Matched entries take the roster spelling of the
// name so the same player lines up across sources. Only the first match per
// roster player counts.
func matchRoster(ranks []model.SourceRank, roster []model.Player) []model.SourceRank {
	matched := make([]model.SourceRank, 0, len(roster))
	for _, p := range roster {
		for _, r := range ranks {
			if model.NameMatches(p.Name, r.Name) {
				matched = append(matched, model.SourceRank{
					Source:   r.Source,
					Name:     p.Name,
					Position: p.Position,
					Rank:     r.Rank,
				})
				break
			}
		}
	}
	return matched
}

// aggregate combines any number of per-source ranking lists into one averaged
// ranking per player per position. Players are grouped by (normalized name,
// position); the average only covers sources that listed the player, and a
// player listed by no source is absent from the output. Each position's list
// is sorted ascending by average rank with ties broken by name.
func aggregate(lists ...[]model.SourceRank) map[model.Position][]model.RankedPlayer {
	type key struct {
		name string
		pos  model.Position
	}
	type group struct {
		name  string
		ranks map[string]int32
	}

	groups := make(map[key]*group)
	order := make([]key, 0, 16)
	for _, list := range lists {
		for _, r := range list {
			k := key{name: model.NormalizeName(r.Name), pos: r.Position}
			g, ok := groups[k]
			if !ok {
				g = &group{name: r.Name, ranks: make(map[string]int32, 3)}
				groups[k] = g
				order = append(order, k)
			}
			// First rank wins if a source repeats a player.
			if _, ok := g.ranks[r.Source]; !ok {
				g.ranks[r.Source] = r.Rank
			}
		}
	}

	result := make(map[model.Position][]model.RankedPlayer)
	for _, k := range order {
		g := groups[k]
		sum := int64(0)
		for _, r := range g.ranks {
			sum += int64(r)
		}
		avg := float64(sum) / float64(len(g.ranks))
		result[k.pos] = append(result[k.pos], model.RankedPlayer{
			Name:        g.name,
			Position:    k.pos,
			SourceRanks: g.ranks,
			AverageRank: math.Round(avg*100) / 100,
		})
	}

	for pos := range result {
		slices.SortFunc(result[pos], func(a, b model.RankedPlayer) int {
			if n := cmp.Compare(a.AverageRank, b.AverageRank); n != 0 {
				return n
			}
			return cmp.Compare(a.Name, b.Name)
		})
	}
	return result
}
