package web

import (
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Rankings requests fan out to three external sites, each with its own
	// 10s timeout, so give requests a generous overall budget.
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/players", func(r chi.Router) {
		r.Get("/", listPlayersHandler(ctrl, render))
		r.Post("/", addPlayerHandler(ctrl, render))
		r.Delete("/{name}", deletePlayerHandler(ctrl, render))
	})

	r.Get("/rankings", rankingsHandler(ctrl, render))

	return r
}
