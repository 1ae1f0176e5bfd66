package web

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/fantasy_basketball/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, admin AdminAuth) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/players", func(r chi.Router) {
		// Show either the search page if the q parameter is not present, or perform
		// the search if it is.
		r.Get("/", playerSearchHandler(ctrl, render))
		r.Get("/rankings", rankingsHandler(ctrl, render))
		r.Get("/compare", compareHandler(ctrl, render))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", apiSearchHandler(ctrl, render))
		r.Get("/rankings", apiRankingsHandler(ctrl, render))
		r.Get("/compare", apiCompareHandler(ctrl, render))
	})

	if admin.Password == "" {
		log.Printf("no admin password set, /admin routes are disabled")
		return r
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("fantasy_basketball", map[string]string{admin.User: admin.Password}))
		r.Use(middleware.Timeout(30 * time.Second)) // Set a longer timeout for /admin actions

		r.Post("/reload", reloadHandler(ctrl, render))
		r.Get("/stats", statsUploadPageHandler(ctrl, render))
		r.Post("/stats", statsUploadHandler(ctrl, render))
	})

	return r
}
