package fantasypros

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/go-resty/resty/v2"
)

const FantasyProsURL = "https://www.fantasypros.com"

const SourceName = "fantasypros"

type Client interface {
	// WeeklyRankings returns the FantasyPros expert consensus ranking for a
	// position. The ECR page always shows the current week, so the week
	// argument is only there to satisfy the common fetcher shape.
	WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error)
}

type client struct {
	http *resty.Client
}

func New() (Client, error) {
	return NewForTest(FantasyProsURL), nil
}

func NewForTest(url string) Client {
	c := resty.New()
	c.SetBaseURL(url)
	c.SetTimeout(10 * time.Second)
	return &client{http: c}
}

func (c *client) WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error) {
	pagePos, err := pagePosition(pos)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("scoring", "PPR").
		Get(fmt.Sprintf("/nfl/rankings/%s.php", pagePos))
	if err != nil {
		return nil, fmt.Errorf("error fetching fantasypros rankings: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from fantasypros: %d", resp.StatusCode())
	}

	return parseECR(resp.String(), pos)
}

func pagePosition(pos model.Position) (string, error) {
	switch pos {
	case model.POS_QB, model.POS_RB, model.POS_WR, model.POS_TE, model.POS_K:
		return strings.ToLower(string(pos)), nil
	case model.POS_DEF:
		return "dst", nil
	default:
		return "", fmt.Errorf("no fantasypros rankings page for position %s", pos)
	}
}

// The rankings page embeds its data as a javascript literal rather than
// rendering a table server-side.
var ecrDataRegex = regexp.MustCompile(`(?s)var ecrData = (\{.*?\});`)

type ecrData struct {
	Players []ecrPlayer `json:"players"`
}

type ecrPlayer struct {
	Name string `json:"player_name"`
	Rank int32  `json:"rank_ecr"`
}

func parseECR(page string, pos model.Position) ([]model.SourceRank, error) {
	m := ecrDataRegex.FindStringSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("no ecrData found on fantasypros page for %s", pos)
	}

	var data ecrData
	if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
		return nil, fmt.Errorf("error parsing ecrData from fantasypros: %w", err)
	}
	if len(data.Players) == 0 {
		return nil, fmt.Errorf("no players in ecrData from fantasypros for %s", pos)
	}

	results := make([]model.SourceRank, 0, len(data.Players))
	for _, p := range data.Players {
		if p.Name == "" || p.Rank <= 0 {
			continue
		}
		results = append(results, model.SourceRank{
			Source:   SourceName,
			Name:     p.Name,
			Position: pos,
			Rank:     p.Rank,
		})
	}
	return results, nil
}
