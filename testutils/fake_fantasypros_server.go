package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// FakeFantasyProsServer mimics the FantasyPros ECR pages, which embed their
// data as a javascript literal. Rankings are registered per page position
// ("qb", "rb", "wr", "te", "k", "dst").
type FakeFantasyProsServer struct {
	s *httptest.Server

	mu       sync.Mutex
	rankings map[string][]RankRow
	failing  bool
}

func NewFakeFantasyProsServer() *FakeFantasyProsServer {
	f := &FakeFantasyProsServer{
		rankings: make(map[string][]RankRow),
	}

	r := chi.NewRouter()
	r.Get("/nfl/rankings/{page}", f.rankingsHandler)
	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeFantasyProsServer) Close() {
	f.s.Close()
}

func (f *FakeFantasyProsServer) URL() string {
	return f.s.URL
}

func (f *FakeFantasyProsServer) SetRankings(pagePos string, rows []RankRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rankings[pagePos] = rows
}

func (f *FakeFantasyProsServer) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *FakeFantasyProsServer) rankingsHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	page := strings.TrimSuffix(chi.URLParam(r, "page"), ".php")
	rows, ok := f.rankings[page]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	type ecrPlayer struct {
		Name string `json:"player_name"`
		Rank int32  `json:"rank_ecr"`
	}
	players := make([]ecrPlayer, 0, len(rows))
	for _, row := range rows {
		players = append(players, ecrPlayer{Name: row.Name, Rank: row.Rank})
	}
	data, err := json.Marshal(map[string]any{"players": players})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<html><head><script>var ecrData = %s;</script></head><body></body></html>`, data)
}
