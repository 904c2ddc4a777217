package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JTH10/fantasy-football-rankings-webapp/controller"
	"github.com/JTH10/fantasy-football-rankings-webapp/controller/mockcontroller"
	"github.com/JTH10/fantasy-football-rankings-webapp/db"
	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/stretchr/testify/mock"
)

func newTestServer(ctrl controller.C) *httptest.Server {
	return httptest.NewServer(getRouter(ctrl, newRender()))
}

func emptyRoster() map[model.Position][]model.Player {
	grouped := make(map[model.Position][]model.Player)
	for _, pos := range model.AllPositions {
		grouped[pos] = make([]model.Player, 0)
	}
	return grouped
}

func emptyRankings() map[model.Position][]model.RankedPlayer {
	result := make(map[model.Position][]model.RankedPlayer)
	for _, pos := range model.AllPositions {
		result[pos] = make([]model.RankedPlayer, 0)
	}
	return result
}

func TestListPlayersHandler(t *testing.T) {
	roster := emptyRoster()
	roster[model.POS_QB] = []model.Player{{Name: "Test Player", Position: model.POS_QB}}

	ctrl := &mockcontroller.C{}
	ctrl.On("ListPlayers", mock.Anything).Return(roster, nil)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/players", server.URL))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var body map[string][]struct {
		Name     string `json:"name"`
		Position string `json:"position"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(body) != len(model.AllPositions) {
		t.Errorf("expected %d position keys, got %d", len(model.AllPositions), len(body))
	}
	qbs := body["QB"]
	if len(qbs) != 1 || qbs[0].Name != "Test Player" {
		t.Errorf("expected Test Player under QB, got %v", qbs)
	}
	if wrs, ok := body["WR"]; !ok || wrs == nil || len(wrs) != 0 {
		t.Errorf("expected an empty WR list, got %v", wrs)
	}
}

func TestAddPlayerHandler_success(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("AddPlayer", mock.Anything, "Test Player", "QB").
		Return(&model.Player{Name: "Test Player", Position: model.POS_QB}, nil)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Post(fmt.Sprintf("%s/players", server.URL), "application/json",
		bytes.NewBufferString(`{"name":"Test Player","position":"QB"}`))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var created struct {
		Name     string `json:"name"`
		Position string `json:"position"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created.Name != "Test Player" || created.Position != "QB" {
		t.Errorf("unexpected created player: %v", created)
	}
}

func TestAddPlayerHandler_duplicate(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("AddPlayer", mock.Anything, "Test Player", "QB").Return(nil, db.ErrPlayerExists)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Post(fmt.Sprintf("%s/players", server.URL), "application/json",
		bytes.NewBufferString(`{"name":"Test Player","position":"QB"}`))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	assertErrorBody(t, resp, "player already exists")
}

func TestAddPlayerHandler_badRequests(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ctrlErr error
	}{
		{name: "not json", payload: `week 3 plz`},
		{name: "missing name", payload: `{"position":"QB"}`, ctrlErr: controller.ErrNameRequired},
		{name: "bad position", payload: `{"name":"Test Player","position":"COACH"}`, ctrlErr: controller.ErrInvalidPosition},
	}

	for _, tc := range tests {
		ctrl := &mockcontroller.C{}
		if tc.ctrlErr != nil {
			ctrl.On("AddPlayer", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.ctrlErr)
		}

		server := newTestServer(ctrl)
		resp, err := http.Post(fmt.Sprintf("%s/players", server.URL), "application/json",
			bytes.NewBufferString(tc.payload))
		if err != nil {
			t.Fatalf("%s: error sending request: %v", tc.name, err)
		}

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: unexpected status code. Got: %d", tc.name, resp.StatusCode)
		}
		resp.Body.Close()
		server.Close()
	}
}

func TestDeletePlayerHandler_success(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("DeletePlayer", mock.Anything, "Test Player").Return(nil)

	server := newTestServer(ctrl)
	defer server.Close()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/players/Test%%20Player", server.URL), nil)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	ctrl.AssertCalled(t, "DeletePlayer", mock.Anything, "Test Player")
}

func TestDeletePlayerHandler_notFound(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("DeletePlayer", mock.Anything, "Nobody").Return(db.ErrPlayerNotFound)

	server := newTestServer(ctrl)
	defer server.Close()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/players/Nobody", server.URL), nil)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	assertErrorBody(t, resp, "player not found")
}

func TestRankingsHandler_success(t *testing.T) {
	rankings := emptyRankings()
	rankings[model.POS_QB] = []model.RankedPlayer{
		{
			Name:        "Josh Allen",
			Position:    model.POS_QB,
			SourceRanks: map[string]int32{"nfl": 1, "fantasypros": 2},
			AverageRank: 1.5,
		},
	}

	ctrl := &mockcontroller.C{}
	ctrl.On("GetRankings", mock.Anything, 3).Return(rankings, nil)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/rankings?week=3", server.URL))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var body map[string][]struct {
		Name            string  `json:"name"`
		NFLRank         *int32  `json:"nfl_rank"`
		RotoPatRank     *int32  `json:"rotopat_rank"`
		FantasyProsRank *int32  `json:"fantasypros_rank"`
		AverageRank     float64 `json:"average_rank"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	qbs := body["QB"]
	if len(qbs) != 1 {
		t.Fatalf("expected 1 QB, got %d", len(qbs))
	}
	if qbs[0].Name != "Josh Allen" || qbs[0].AverageRank != 1.5 {
		t.Errorf("unexpected ranking: %v", qbs[0])
	}
	if qbs[0].NFLRank == nil || *qbs[0].NFLRank != 1 {
		t.Errorf("expected nfl_rank 1, got %v", qbs[0].NFLRank)
	}
	if qbs[0].RotoPatRank != nil {
		t.Errorf("expected null rotopat_rank, got %v", *qbs[0].RotoPatRank)
	}
}

func TestRankingsHandler_defaultsToCurrentWeek(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CurrentWeek").Return(7)
	ctrl.On("GetRankings", mock.Anything, 7).Return(emptyRankings(), nil)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/rankings", server.URL))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	ctrl.AssertCalled(t, "GetRankings", mock.Anything, 7)
}

func TestRankingsHandler_badWeek(t *testing.T) {
	tests := []struct {
		name string
		week string
	}{
		{name: "zero", week: "0"},
		{name: "too high", week: "18"},
		{name: "negative", week: "-2"},
		{name: "not a number", week: "playoffs"},
	}

	for _, tc := range tests {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetRankings", mock.Anything, mock.Anything).Return(nil, controller.ErrInvalidWeek)

		server := newTestServer(ctrl)
		resp, err := http.Get(fmt.Sprintf("%s/rankings?week=%s", server.URL, tc.week))
		if err != nil {
			t.Fatalf("%s: error sending request: %v", tc.name, err)
		}

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: unexpected status code. Got: %d", tc.name, resp.StatusCode)
		}
		resp.Body.Close()
		server.Close()
	}
}

func TestRankingsHandler_allSourcesFailedIsEmptyNotError(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetRankings", mock.Anything, 3).Return(emptyRankings(), nil)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/rankings?week=3", server.URL))
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var body map[string][]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	for _, pos := range model.AllPositions {
		list, ok := body[string(pos)]
		if !ok || len(list) != 0 {
			t.Errorf("expected an empty list for %s, got %v", pos, list)
		}
	}
}

func TestRootHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CurrentWeek").Return(5)

	server := newTestServer(ctrl)
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("error reading body: %v", err)
	}
	if !strings.Contains(buf.String(), "Fantasy Football Rankings") {
		t.Errorf("home page does not contain the expected title")
	}
}

func assertErrorBody(t *testing.T, resp *http.Response, expected string) {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding error response: %v", err)
	}
	if body.Error != expected {
		t.Errorf("expected error '%s', got '%s'", expected, body.Error)
	}
}
