package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// FakeRotoPatServer mimics the NBC Sports weekly rankings articles. Rankings
// are registered per article slug suffix ("qb", "rb", "wr", "te-k-def").
type FakeRotoPatServer struct {
	s *httptest.Server

	mu       sync.Mutex
	rankings map[string][]RankRow
	failing  bool
}

func NewFakeRotoPatServer() *FakeRotoPatServer {
	f := &FakeRotoPatServer{
		rankings: make(map[string][]RankRow),
	}

	r := chi.NewRouter()
	r.Get("/fantasy/football/news/{slug}", f.articleHandler)
	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeRotoPatServer) Close() {
	f.s.Close()
}

func (f *FakeRotoPatServer) URL() string {
	return f.s.URL
}

func (f *FakeRotoPatServer) SetRankings(articlePos string, rows []RankRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rankings[articlePos] = rows
}

func (f *FakeRotoPatServer) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *FakeRotoPatServer) articleHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	// Slugs look like "2025-week-3-fantasy-football-rankings-te-k-def".
	slug := chi.URLParam(r, "slug")
	idx := strings.Index(slug, "rankings-")
	if idx == -1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	rows, ok := f.rankings[slug[idx+len("rankings-"):]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<html><body><article><table><tr><th>Rank</th><th>Player</th><th>Team</th></tr>`)
	for _, row := range rows {
		fmt.Fprintf(w, `<tr><td><b>%d</b></td><td>%s</td><td>FA</td></tr>`, row.Rank, row.Name)
	}
	fmt.Fprint(w, `</table></article></body></html>`)
}
