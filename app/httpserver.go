package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	leaderboardservice "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/application"
)

// httpHandler exposes health, metrics and the read-only leaderboard and
// round audit views.
func (app *App) httpHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.Metrics.Registry, promhttp.HandlerOpts{}))

	r.Get("/leaderboard", app.handleLeaderboard)
	r.Get("/leaderboard/export", app.handleLeaderboardExport)
	r.Get("/leaderboard/chart", app.handleLeaderboardChart)
	r.Get("/rounds/{round}/entries", app.handleRoundEntries)

	return r
}

func (app *App) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := app.LeaderboardModule.Service.Snapshot(r.Context())
	if err != nil {
		app.httpError(w, r, "failed to load standings", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		app.Logger.ErrorContext(r.Context(), "failed to encode standings", slog.Any("error", err))
	}
}

func (app *App) handleLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	workbook, err := app.LeaderboardModule.Service.ExportXLSX(r.Context())
	if err != nil {
		app.httpError(w, r, "failed to export standings", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	w.Write(workbook)
}

func (app *App) handleLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	topN := leaderboardservice.DefaultChartTopN
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "top must be a positive integer", http.StatusBadRequest)
			return
		}
		topN = n
	}

	png, err := app.LeaderboardModule.Service.RenderChart(r.Context(), topN)
	if err != nil {
		app.httpError(w, r, "failed to render chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (app *App) handleRoundEntries(w http.ResponseWriter, r *http.Request) {
	round := chi.URLParam(r, "round")
	entries, err := app.RoundModule.Service.AuditEntries(r.Context(), round)
	if err != nil {
		app.httpError(w, r, "failed to load round entries", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		app.Logger.ErrorContext(r.Context(), "failed to encode round entries", slog.Any("error", err))
	}
}

func (app *App) httpError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	app.Logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
	http.Error(w, msg, http.StatusInternalServerError)
}
