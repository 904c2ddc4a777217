package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JTH10/fantasy-football-rankings-webapp/controller"
	"github.com/JTH10/fantasy-football-rankings-webapp/db"
	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/fantasypros"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/nfl"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/rotopat"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

type playerResponse struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// rankedPlayerResponse mirrors what the frontend table shows: one column per
// source plus the average. Sources that didn't rank the player are null.
type rankedPlayerResponse struct {
	Name            string  `json:"name"`
	NFLRank         *int32  `json:"nfl_rank"`
	RotoPatRank     *int32  `json:"rotopat_rank"`
	FantasyProsRank *int32  `json:"fantasypros_rank"`
	AverageRank     float64 `json:"average_rank"`
}

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week := ctrl.CurrentWeek()
		if q := r.URL.Query().Get("week"); q != "" {
			if n, err := strconv.Atoi(q); err == nil && model.ValidWeek(n) {
				week = n
			}
		}

		data := map[string]any{
			"week":      week,
			"positions": model.AllPositions,
		}
		render.HTML(w, http.StatusOK, "index", data)
	}
}

func listPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := ctrl.ListPlayers(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		resp := make(map[model.Position][]playerResponse, len(grouped))
		for pos, players := range grouped {
			list := make([]playerResponse, 0, len(players))
			for _, p := range players {
				list = append(list, playerResponse{Name: p.Name, Position: string(p.Position)})
			}
			resp[pos] = list
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func addPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("bad payload: %v", err)})
			return
		}

		p, err := ctrl.AddPlayer(r.Context(), req.Name, req.Position)
		if err != nil {
			switch {
			case errors.Is(err, db.ErrPlayerExists):
				render.JSON(w, http.StatusConflict, errorResponse{Error: "player already exists"})
			case errors.Is(err, controller.ErrNameRequired), errors.Is(err, controller.ErrInvalidPosition):
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			default:
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusCreated, playerResponse{Name: p.Name, Position: string(p.Position)})
	}
}

func deletePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}

		if err := ctrl.DeletePlayer(r.Context(), name); err != nil {
			switch {
			case errors.Is(err, db.ErrPlayerNotFound):
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "player not found"})
			case errors.Is(err, controller.ErrNameRequired):
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			default:
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, map[string]string{"message": "player deleted"})
	}
}

func rankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var week int
		if q := r.URL.Query().Get("week"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("error parsing week: %v", err)})
				return
			}
			week = n
		} else {
			week = ctrl.CurrentWeek()
		}

		rankings, err := ctrl.GetRankings(r.Context(), week)
		if err != nil {
			if errors.Is(err, controller.ErrInvalidWeek) {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		resp := make(map[model.Position][]rankedPlayerResponse, len(rankings))
		for pos, players := range rankings {
			list := make([]rankedPlayerResponse, 0, len(players))
			for _, p := range players {
				list = append(list, rankedPlayerResponse{
					Name:            p.Name,
					NFLRank:         sourceRank(p, nfl.SourceName),
					RotoPatRank:     sourceRank(p, rotopat.SourceName),
					FantasyProsRank: sourceRank(p, fantasypros.SourceName),
					AverageRank:     p.AverageRank,
				})
			}
			resp[pos] = list
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func sourceRank(p model.RankedPlayer, source string) *int32 {
	if rank, ok := p.SourceRanks[source]; ok {
		return &rank
	}
	return nil
}
