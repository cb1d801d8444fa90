// internal/httpserver/server.go
//
// HTTP server wiring for the bingo renderer.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, logging).
//   - Page: GET / renders the grid for the query-string configuration.
//   - JSON API under /api: grid, categories, share link, board toggle/reset.
//   - Board of the day: /daily and /api/daily (routes_daily.go).
//   - Static assets under /static.
//
// Notes:
//   - The server is stateless. Mark state travels in a signed board token held
//     by the browser; every toggle returns a fresh token.
//   - Malformed query parameters are defaulted, never rejected.
//   - A selection too small for the grid is a normal outcome: the page shows an
//     inline message and no grid, the API answers 422.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/board"
	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/game"
	"github.com/robalobadob/bingo/internal/shuffle"
	"github.com/robalobadob/bingo/internal/sprites"
	"github.com/robalobadob/bingo/internal/store"
	"github.com/robalobadob/bingo/internal/urlstate"
)

// cellPixels is the rendered edge length of one cell.
const cellPixels = 120

// Options tunes a Server. Zero values get defaults.
type Options struct {
	PublicURL       string // base for share links; derived from the request when empty
	ClientOrigin    string // CORS origin for /api; disabled when empty
	DailySalt       string
	DefaultGridSize int
	Now             func() time.Time
	NewSeed         func() string
}

// Server bundles router, catalog source, sprite table and token issuer.
type Server struct {
	r       *chi.Mux
	store   store.Store
	sprites *sprites.Table
	tokens  *board.Issuer
	tpl     *template.Template
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, spr *sprites.Table, tokens *board.Issuer, opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewSeed == nil {
		opts.NewSeed = urlstate.RandomSeed
	}
	if !game.ValidSize(opts.DefaultGridSize) {
		opts.DefaultGridSize = urlstate.DefaultGridSize
	}
	tpl, err := assets.Templates(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), store: st, sprites: spr, tokens: tokens, tpl: tpl, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access line
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

	s.r.Get("/", s.handlePage)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static()))))

	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(cors(opts.ClientOrigin))
		r.Get("/categories", s.handleCategories)
		r.Get("/grid", s.handleGrid)
		r.Get("/share", s.handleShare)
		r.Post("/board/toggle", s.handleToggle)
		r.Post("/board/reset", s.handleReset)
		s.mountDaily(s.r, r)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", map[string]any{"path": r.URL.Path})
		})
	})

	return s, nil
}

// Start begins serving HTTP on addr and shuts down gracefully when ctx ends.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ------------------------------ GRID ---------------------------------------

// cellView is one rendered square.
type cellView struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Description string `json:"description"`
	Sprite      string `json:"sprite"`
}

// gridView is a generated grid plus the token that carries its marks.
type gridView struct {
	Config   urlstate.Config `json:"config"`
	ShareURL string          `json:"shareUrl"`
	Rows     [][]cellView    `json:"cells"`
	Token    string          `json:"token"`
}

// parseConfig reads the request's query string leniently.
func (s *Server) parseConfig(r *http.Request) urlstate.Config {
	return urlstate.ParseWithDefault(r.URL.Query(), s.opts.DefaultGridSize, s.opts.NewSeed)
}

// buildGrid shuffles the catalog for cfg and lays out the cells.
// A too-small selection comes back as *shuffle.InsufficientItemsError.
func (s *Server) buildGrid(cat *catalog.Catalog, cfg urlstate.Config, base string) (*gridView, error) {
	rows, err := shuffle.Grid(cat, cfg.Seed, cfg.GridSize, cat.Selection(cfg.Categories))
	if err != nil {
		return nil, err
	}
	view := &gridView{Config: cfg, ShareURL: cfg.ShareURL(base), Rows: make([][]cellView, len(rows))}
	for r, row := range rows {
		view.Rows[r] = make([]cellView, len(row))
		for c, it := range row {
			view.Rows[r][c] = cellView{Row: r, Col: c, Description: it.Description, Sprite: s.sprites.Lookup(it.Description)}
		}
	}
	if view.Token, err = s.tokens.Issue("", cfg, nil); err != nil {
		return nil, err
	}
	return view, nil
}

// handleGrid returns the grid for the query configuration as JSON.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalog(w, r)
	if !ok {
		return
	}
	cfg := s.parseConfig(r)
	view, err := s.buildGrid(cat, cfg, s.baseURL(r))
	if err != nil {
		s.writeGridError(w, cfg, err)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// writeGridError maps buildGrid failures to API responses.
func (s *Server) writeGridError(w http.ResponseWriter, cfg urlstate.Config, err error) {
	var ie *shuffle.InsufficientItemsError
	if errors.As(err, &ie) {
		log.Debug().Str("seed", cfg.Seed).Int("have", ie.Have).Int("need", ie.Need).Msg("insufficient items")
		writeError(w, http.StatusUnprocessableEntity, "insufficient_items", map[string]any{
			"have":    ie.Have,
			"need":    ie.Need,
			"message": "Not enough items to fill the grid. Please select more categories.",
		})
		return
	}
	log.Error().Err(err).Msg("build grid")
	writeError(w, http.StatusInternalServerError, "grid_failed", nil)
}

// categoryView is a checkbox on the page / an entry of /api/categories.
type categoryView struct {
	Name    string `json:"name"`
	Bit     int    `json:"bit"`
	Items   int    `json:"items"`
	Checked bool   `json:"-"`
}

func categoryViews(cat *catalog.Catalog, mask int64) []categoryView {
	selected := cat.Selection(mask)
	cats := cat.Categories()
	out := make([]categoryView, len(cats))
	for i, c := range cats {
		out[i] = categoryView{Name: c.Name, Bit: i, Items: len(c.Items)}
		for _, name := range selected {
			if name == c.Name {
				out[i].Checked = true
			}
		}
	}
	return out
}

// handleCategories lists categories in mask bit order.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalog(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"categories": categoryViews(cat, catalog.AllCategories),
		"all":        catalog.AllCategories,
	})
}

// handleShare returns the fully specified share URL for the query.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	cfg := s.parseConfig(r)
	_ = json.NewEncoder(w).Encode(map[string]any{"url": cfg.ShareURL(s.baseURL(r)), "config": cfg})
}

// ------------------------------ BOARD --------------------------------------

// toggleReq/Res payloads for POST /api/board/toggle.
// Either player (1 or 2) or the pointer button (0 or 2) names who marks.
type toggleReq struct {
	Token  string `json:"token"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player int    `json:"player,omitempty"`
	Button *int   `json:"button,omitempty"`
}

// player resolves the marking player, preferring the pointer button.
func (q toggleReq) player() (game.Player, error) {
	if q.Button != nil {
		return game.PlayerFromButton(*q.Button)
	}
	return game.Player(q.Player), nil
}

type toggleRes struct {
	Token string    `json:"token"`
	Value game.Mark `json:"value"`
	game.Completion
}

// handleToggle flips a player's mark on the token's board and reports lines.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	b, err := s.tokens.Parse(req.Token)
	if err != nil {
		log.Debug().Err(err).Msg("toggle: bad token")
		writeError(w, http.StatusBadRequest, "invalid_token", nil)
		return
	}
	p, err := req.player()
	if err != nil {
		writeError(w, http.StatusBadRequest, errorCode(err), nil)
		return
	}
	val, err := b.State.Toggle(req.Row, req.Col, p)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorCode(err), nil)
		return
	}
	done := b.State.CheckLineCompletion(req.Row, req.Col, p)
	if done.Any() {
		log.Info().Str("board", b.ID).Int("player", int(p)).
			Bool("row", done.Row).Bool("col", done.Col).Msg("line complete")
	}
	tok, err := s.tokens.Issue(b.ID, b.Config, b.State)
	if err != nil {
		log.Error().Err(err).Msg("reissue board token")
		writeError(w, http.StatusInternalServerError, "token_failed", nil)
		return
	}
	_ = json.NewEncoder(w).Encode(toggleRes{Token: tok, Value: val, Completion: done})
}

// handleReset clears every mark on the token's board. The grid and board id stay.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	b, err := s.tokens.Parse(req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_token", nil)
		return
	}
	b.State.Reset()
	tok, err := s.tokens.Issue(b.ID, b.Config, b.State)
	if err != nil {
		log.Error().Err(err).Msg("reissue board token")
		writeError(w, http.StatusInternalServerError, "token_failed", nil)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"token": tok, "marks": b.State.Encode()})
}

// errorCode names a game error for clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, game.ErrInvalidPlayer):
		return "invalid_player"
	}
	return "bad_request"
}

// ------------------------------- PAGE --------------------------------------

// pageView feeds templates/index.html.
type pageView struct {
	Config     urlstate.Config
	Categories []categoryView
	MinSize    int
	MaxSize    int
	PixelSize  int
	Rows       [][]cellView
	Token      string
	ShareURL   string
	Error      string
}

// handlePage renders the full page for the query configuration.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load catalog")
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	cfg := s.parseConfig(r)
	base := s.baseURL(r)
	pv := pageView{
		Config:     cfg,
		Categories: categoryViews(cat, cfg.Categories),
		MinSize:    game.MinGridSize,
		MaxSize:    game.MaxGridSize,
		PixelSize:  cfg.GridSize * cellPixels,
		ShareURL:   cfg.ShareURL(base),
	}
	view, err := s.buildGrid(cat, cfg, base)
	switch {
	case err == nil:
		pv.Rows, pv.Token = view.Rows, view.Token
	case errors.Is(err, shuffle.ErrInsufficientItems):
		pv.Error = "Not enough items to fill the grid. Please select more categories."
	default:
		log.Error().Err(err).Msg("build grid")
		http.Error(w, "grid unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, "index.html", pv); err != nil {
		log.Error().Err(err).Msg("render page")
	}
}

// ------------------------------- util --------------------------------------

// catalog loads the current catalog or writes a 500.
func (s *Server) catalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := s.store.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load catalog")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable", nil)
		return nil, false
	}
	return cat, true
}

// baseURL is where share links point: PUBLIC_URL, or this host's root page.
func (s *Server) baseURL(r *http.Request) string {
	if s.opts.PublicURL != "" {
		return s.opts.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// writeError writes {"error": code, ...extra} with status.
func writeError(w http.ResponseWriter, status int, code string, extra map[string]any) {
	body := map[string]any{"error": code}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
