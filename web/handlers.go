package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/mww/fantasy_basketball/controller"
	"github.com/mww/fantasy_basketball/model"
	"github.com/unrolled/render"
)

// Largest stats upload accepted, including the multipart framing.
const maxUploadSize = 5 << 20

var positions = []model.Position{model.POS_PG, model.POS_SG, model.POS_SF, model.POS_PF, model.POS_C}

func rootHandler(_ controller.C, _ *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
	}
}

func playerSearchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		var err error
		var results []model.RankedPlayer = nil
		if query != "" {
			results, err = ctrl.Search(r.Context(), query)
			if err != nil {
				render.HTML(w, http.StatusBadRequest, "400", err.Error())
				return
			}
		}

		data := map[string]any{
			"q":       query,
			"results": results,
		}
		render.HTML(w, http.StatusOK, "playerSearch", data)
	}
}

func rankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos := model.ParsePosition(r.URL.Query().Get("pos"))

		data := map[string]any{
			"pos":       pos,
			"positions": positions,
			"players":   ctrl.Rankings(r.Context(), pos),
			"loadedAt":  ctrl.LoadedAt(),
		}
		render.HTML(w, http.StatusOK, "rankings", data)
	}
}

func compareHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := r.URL.Query().Get("a")
		b := r.URL.Query().Get("b")

		data := map[string]any{
			"a":     a,
			"b":     b,
			"names": ctrl.PlayerNames(r.Context()),
		}

		if a == "" && b == "" {
			render.HTML(w, http.StatusOK, "compare", data)
			return
		}
		if a == "" || b == "" {
			render.HTML(w, http.StatusBadRequest, "400", "two players are required for a comparison")
			return
		}

		c, err := ctrl.Compare(r.Context(), a, b)
		if err != nil {
			if errors.Is(err, controller.ErrPlayerNotFound) {
				render.HTML(w, http.StatusNotFound, "404", err.Error())
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}

		data["comparison"] = c
		render.HTML(w, http.StatusOK, "compare", data)
	}
}

type apiError struct {
	Error string `json:"error"`
}

type apiComparison struct {
	First   model.RankedPlayer  `json:"first"`
	Second  model.RankedPlayer  `json:"second"`
	Outcome string              `json:"outcome"`
	Winner  *model.RankedPlayer `json:"winner"`
}

func apiSearchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "the q parameter is required"})
			return
		}

		results, err := ctrl.Search(r.Context(), query)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

func apiRankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos := model.ParsePosition(r.URL.Query().Get("pos"))
		render.JSON(w, http.StatusOK, ctrl.Rankings(r.Context(), pos))
	}
}

func apiCompareHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := r.URL.Query().Get("a")
		b := r.URL.Query().Get("b")
		if a == "" || b == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "the a and b parameters are required"})
			return
		}

		c, err := ctrl.Compare(r.Context(), a, b)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, controller.ErrPlayerNotFound) {
				code = http.StatusNotFound
			}
			render.JSON(w, code, apiError{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, apiComparison{
			First:   c.First,
			Second:  c.Second,
			Outcome: c.Outcome.String(),
			Winner:  c.Winner(),
		})
	}
}

func reloadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Reload(r.Context()); err != nil {
			log.Printf("error reloading stats: %v", err)
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error reloading stats: %v", err))
			return
		}

		render.Text(w, http.StatusOK, fmt.Sprintf("reload completed successfully, %d players ranked", len(ctrl.PlayerNames(r.Context()))))
	}
}

func statsUploadPageHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusOK, "statsUploadPage", ctrl.LoadedAt())
	}
}

func statsUploadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tooLarge := fmt.Sprintf("Stats files are limited to %d MB", maxUploadSize>>20)
		if r.ContentLength > maxUploadSize {
			render.HTML(w, http.StatusRequestEntityTooLarge, "400", tooLarge)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				render.HTML(w, http.StatusRequestEntityTooLarge, "400", tooLarge)
				return
			}
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		file, handler, err := r.FormFile("stats-file")
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}
		defer file.Close()

		if handler.Header.Get("Content-Type") != "text/csv" {
			msg := fmt.Sprintf("Only CSV files are supported. Got %s", handler.Header.Get("Content-Type"))
			render.HTML(w, http.StatusBadRequest, "400", msg)
			return
		}

		if err := ctrl.Import(r.Context(), file); err != nil {
			var loadErr *controller.LoadError
			var parseErr *controller.ParseError
			if errors.As(err, &loadErr) || errors.As(err, &parseErr) {
				render.HTML(w, http.StatusBadRequest, "400", err.Error())
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}
		http.Redirect(w, r, "/players/rankings", http.StatusSeeOther)
	}
}
