package nfl

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const NFLURL = "https://fantasy.nfl.com"

// SourceName keys this source's contribution in aggregated rankings.
const SourceName = "nfl"

type Client interface {
	// WeeklyRankings returns NFL.com's ranking table for a position and week,
	// in the order the site lists the players.
	WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error)
}

type client struct {
	http *resty.Client
}

func New() (Client, error) {
	return NewForTest(NFLURL), nil
}

func NewForTest(url string) Client {
	c := resty.New()
	c.SetBaseURL(url)
	c.SetTimeout(10 * time.Second)
	return &client{http: c}
}

func (c *client) WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error) {
	season := time.Now().UTC().Year()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"leagueId":   "0",
			"position":   string(pos),
			"statSeason": strconv.Itoa(season),
			"statType":   "weekStats",
			"week":       strconv.Itoa(week),
		}).
		Get("/research/rankings")
	if err != nil {
		return nil, fmt.Errorf("error fetching nfl rankings: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from nfl: %d", resp.StatusCode())
	}

	return parseRankings(resp.String(), pos)
}

var rankRegex = regexp.MustCompile(`\d+`)

func parseRankings(page string, pos model.Position) ([]model.SourceRank, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("error parsing nfl rankings page: %w", err)
	}

	results := make([]model.SourceRank, 0, 32)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return // header row
		}

		m := rankRegex.FindString(cells.Eq(0).Text())
		if m == "" {
			return
		}
		rank, err := strconv.Atoi(m)
		if err != nil {
			return
		}

		// The player cell has a name link plus team and position noise, so
		// prefer the anchor text when present.
		name := strings.TrimSpace(cells.Eq(1).Find("a").First().Text())
		if name == "" {
			name = strings.TrimSpace(cells.Eq(1).Text())
		}
		if name == "" {
			return
		}

		results = append(results, model.SourceRank{
			Source:   SourceName,
			Name:     name,
			Position: pos,
			Rank:     int32(rank),
		})
	})

	if len(results) == 0 {
		return nil, fmt.Errorf("no rankings found on nfl page for %s", pos)
	}
	return results, nil
}
