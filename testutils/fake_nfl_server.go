package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/go-chi/chi/v5"
)

// FakeNFLServer mimics the fantasy.nfl.com research rankings page. Rankings
// are registered per position with SetRankings; SetFailing makes every
// request return a 503 to simulate an unreachable source.
type FakeNFLServer struct {
	s *httptest.Server

	mu       sync.Mutex
	rankings map[model.Position][]RankRow
	failing  bool
}

func NewFakeNFLServer() *FakeNFLServer {
	f := &FakeNFLServer{
		rankings: make(map[model.Position][]RankRow),
	}

	r := chi.NewRouter()
	r.Get("/research/rankings", f.rankingsHandler)
	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeNFLServer) Close() {
	f.s.Close()
}

func (f *FakeNFLServer) URL() string {
	return f.s.URL
}

func (f *FakeNFLServer) SetRankings(pos model.Position, rows []RankRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rankings[pos] = rows
}

func (f *FakeNFLServer) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *FakeNFLServer) rankingsHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	pos := model.ParsePosition(r.URL.Query().Get("position"))
	rows := f.rankings[pos]

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<html><body><table class="tableType-player"><tr><th>Rank</th><th>Player</th></tr>`)
	for _, row := range rows {
		fmt.Fprintf(w, `<tr><td>%d</td><td><a class="playerName">%s</a> %s - FA</td></tr>`,
			row.Rank, row.Name, pos)
	}
	fmt.Fprint(w, `</table></body></html>`)
}
