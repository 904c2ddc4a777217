package rotopat

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

const RotoPatURL = "https://www.nbcsports.com"

const SourceName = "rotopat"

type Client interface {
	// WeeklyRankings returns the RotoPat weekly rankings article table for a
	// position. TE, K and DEF share a single article.
	WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error)
}

type client struct {
	http *resty.Client
}

func New() (Client, error) {
	return NewForTest(RotoPatURL), nil
}

func NewForTest(url string) Client {
	c := resty.New()
	c.SetBaseURL(url)
	c.SetTimeout(10 * time.Second)
	return &client{http: c}
}

func (c *client) WeeklyRankings(ctx context.Context, pos model.Position, week int) ([]model.SourceRank, error) {
	season := time.Now().UTC().Year()
	path := fmt.Sprintf("/fantasy/football/news/%d-week-%d-fantasy-football-rankings-%s",
		season, week, articlePosition(pos))

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("error fetching rotopat rankings: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from rotopat: %d", resp.StatusCode())
	}

	return parseRankings(resp.String(), pos)
}

// TE, K and DEF are ranked together in one article each week.
func articlePosition(pos model.Position) string {
	switch pos {
	case model.POS_TE, model.POS_K, model.POS_DEF:
		return "te-k-def"
	default:
		return strings.ToLower(string(pos))
	}
}

var rankRegex = regexp.MustCompile(`\d+`)

func parseRankings(page string, pos model.Position) ([]model.SourceRank, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("error parsing rotopat rankings page: %w", err)
	}

	results := make([]model.SourceRank, 0, 32)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		// The rank lives in a bold tag when the article has one, otherwise
		// it is the first numeric cell.
		rankText := row.Find("b").First().Text()
		if rankText == "" {
			rankText = cells.Eq(0).Text()
		}
		m := rankRegex.FindString(rankText)
		if m == "" {
			return
		}
		rank, err := strconv.Atoi(m)
		if err != nil {
			return
		}

		name := strings.TrimSpace(cells.Eq(1).Text())
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
		return nil, fmt.Errorf("no rankings found on rotopat page for %s", pos)
	}
	return results, nil
}
