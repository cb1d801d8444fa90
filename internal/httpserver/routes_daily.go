// internal/httpserver/routes_daily.go
//
// Board of the day.
//   - GET /daily      → 302 to today's share URL (seed derived from date + salt)
//   - GET /api/daily  → {"date", "seed", "url"}
//
// gridSize and categories may be passed through; they are parsed with the same
// leniency as the main page. Only the seed is fixed by the date.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/bingo/internal/daily"
	"github.com/robalobadob/bingo/internal/urlstate"
)

// mountDaily registers /daily on root and /daily on the api subrouter.
func (s *Server) mountDaily(root, api chi.Router) {
	root.Get("/daily", s.handleDailyRedirect)
	api.Get("/daily", s.handleDaily)
}

// dailyConfig returns today's date key and configuration for r.
func (s *Server) dailyConfig(r *http.Request) (string, urlstate.Config) {
	now := s.opts.Now()
	seed := daily.Seed(now, s.opts.DailySalt)
	cfg := urlstate.ParseWithDefault(r.URL.Query(), s.opts.DefaultGridSize, func() string { return seed })
	cfg.Seed = seed
	return daily.DateKey(now), cfg
}

func (s *Server) handleDailyRedirect(w http.ResponseWriter, r *http.Request) {
	_, cfg := s.dailyConfig(r)
	http.Redirect(w, r, cfg.ShareURL(s.baseURL(r)), http.StatusFound)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, cfg := s.dailyConfig(r)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date": date,
		"seed": cfg.Seed,
		"url":  cfg.ShareURL(s.baseURL(r)),
	})
}
