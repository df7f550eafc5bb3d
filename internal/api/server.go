// Package api serves board generation and token decoding over HTTP.
// All endpoints are GET and read-only apart from the board history, which
// records every generated board when a database is attached.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/boardurl"
	"github.com/talgya/hexboard/internal/engine"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/shapes"
)

// Server serves boards over HTTP.
type Server struct {
	Gen  *engine.Generator
	DB   *persistence.DB // nil disables history
	Addr string

	// RateLimit is generated boards per minute per client. Zero disables
	// the limit.
	RateLimit   int
	CORSOrigins []string

	// Set once the first board has been generated.
	warm atomic.Bool
}

// Handler returns the API routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	generate := s.handleGenerate
	if s.RateLimit > 0 {
		generate = RateLimitMiddleware(NewRateLimiter(s.RateLimit, time.Minute), generate)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/shapes", s.handleShapes)
	mux.HandleFunc("GET /api/v1/board", generate)
	mux.HandleFunc("GET /api/v1/board/{token}", s.handleDecode)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/history/{id}", s.handleHistoryDetail)

	return corsMiddleware(s.CORSOrigins, mux)
}

// Start begins serving in a goroutine and returns the server so the caller
// can shut it down.
func (s *Server) Start() *http.Server {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", s.Addr, "history", s.DB != nil, "rate_limit", s.RateLimit)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	return srv
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4200": true,
		"http://localhost:3000": true,
	}
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type shapeSummary struct {
	Shape      board.Shape      `json:"shape"`
	Name       string           `json:"name"`
	Key        string           `json:"key"`
	Dimensions board.Dimensions `json:"dimensions"`
	Hexes      int              `json:"hexes"`
	Ports      int              `json:"ports"`
}

func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	var result []shapeSummary
	for _, spec := range shapes.All() {
		key, _ := shapes.Key(spec.Shape)
		result = append(result, shapeSummary{
			Shape:      spec.Shape,
			Name:       spec.Name,
			Key:        string(key),
			Dimensions: spec.Dimensions,
			Hexes:      len(spec.Hexes()),
			Ports:      len(spec.DefaultPorts),
		})
	}
	writeJSON(w, result)
}

type searchInfo struct {
	Options   engine.Options `json:"options"`
	Quality   float64        `json:"quality"`
	Target    *float64       `json:"target,omitempty"` // nil when unbounded
	Attempts  int            `json:"attempts"`
	Failures  int            `json:"failures"`
	ElapsedMS int64          `json:"elapsed_ms"`
	Seed      int64          `json:"seed"`
}

type boardResponse struct {
	ID         string           `json:"id,omitempty"`
	Token      string           `json:"token"`
	Shape      board.Shape      `json:"shape"`
	Name       string           `json:"name"`
	Dimensions board.Dimensions `json:"dimensions"`
	Quality    float64          `json:"quality"`
	Hexes      []*board.Hex     `json:"hexes"`
	Corners    []*board.Corner  `json:"corners"`
	Ports      []*board.Port    `json:"ports"`
	Search     *searchInfo      `json:"search,omitempty"`
}

func newBoardResponse(b *board.Board, token string, quality float64) boardResponse {
	return boardResponse{
		Token:      token,
		Shape:      b.Shape(),
		Name:       b.Spec.Name,
		Dimensions: b.Dimensions(),
		Quality:    quality,
		Hexes:      b.Hexes(),
		Corners:    b.Corners(),
		Ports:      b.Ports(),
	}
}

// parseOptions reads the generation query parameters over the defaults.
func parseOptions(r *http.Request) (*board.Spec, engine.Options, error) {
	q := r.URL.Query()
	opts := engine.DefaultOptions()

	spec := shapes.MustGet(shapes.Standard)
	if name := q.Get("shape"); name != "" {
		var ok bool
		if spec, ok = shapes.ByName(name); !ok {
			return nil, opts, errors.New("unknown shape " + strconv.Quote(name))
		}
	}

	var err error
	if opts.DesertPlacement, err = engine.ParseDesertPlacement(q.Get("desert")); err != nil {
		return nil, opts, err
	}
	fraction := func(key string, dst *float64) error {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 || math.IsNaN(f) {
			return errors.New(key + " must be a number between 0 and 1")
		}
		*dst = f
		return nil
	}
	if err := fraction("resources", &opts.ResourceDistribution); err != nil {
		return nil, opts, err
	}
	if err := fraction("numbers", &opts.NumberDistribution); err != nil {
		return nil, opts, err
	}
	if err := parseFlag(q, "shuffle_ports", &opts.ShufflePorts); err != nil {
		return nil, opts, err
	}
	if err := parseScoring(q, &opts); err != nil {
		return nil, opts, err
	}
	return spec, opts, nil
}

// parseScoring reads the options that change how a finished board scores.
func parseScoring(q url.Values, opts *engine.Options) error {
	var err error
	if opts.GameStyle, err = engine.ParseGameStyle(q.Get("style")); err != nil {
		return err
	}
	return parseFlag(q, "resource_on_port", &opts.AllowResourceOnPort)
}

func parseFlag(q url.Values, key string, dst *bool) error {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(key + " must be true or false")
	}
	*dst = b
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	spec, opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.ColdStart = s.warm.CompareAndSwap(false, true)

	res, err := s.Gen.Generate(r.Context(), spec, opts)
	if err != nil {
		slog.Error("board generation failed", "shape", spec.Shape, "error", err)
		http.Error(w, "board generation failed", http.StatusInternalServerError)
		return
	}
	token, err := boardurl.Serialize(res.Board)
	if err != nil {
		slog.Error("board serialization failed", "shape", spec.Shape, "error", err)
		http.Error(w, "board serialization failed", http.StatusInternalServerError)
		return
	}

	resp := newBoardResponse(res.Board, token, res.Quality)
	resp.Search = &searchInfo{
		Options:   res.Options,
		Quality:   res.Quality,
		Attempts:  res.Attempts,
		Failures:  res.Failures,
		ElapsedMS: res.Elapsed.Milliseconds(),
		Seed:      res.Seed,
	}
	if !math.IsInf(res.Target, 0) {
		target := res.Target
		resp.Search.Target = &target
	}

	if s.DB != nil {
		optsJSON, _ := json.Marshal(res.Options)
		rec, err := s.DB.SaveBoard(persistence.BoardRecord{
			Token:       token,
			Shape:       string(spec.Shape),
			Quality:     res.Quality,
			Attempts:    res.Attempts,
			ElapsedMS:   res.Elapsed.Milliseconds(),
			OptionsJSON: string(optsJSON),
		})
		if err != nil {
			slog.Warn("failed to save board", "token", token, "error", err)
		} else {
			resp.ID = rec.ID
		}
	}

	slog.Info("board generated",
		"shape", spec.Shape,
		"token", token,
		"attempts", res.Attempts,
		"quality", res.Quality,
		"elapsed", res.Elapsed,
	)
	writeJSON(w, resp)
}

// handleDecode rebuilds a board from its token. Unsupported tokens get 400
// so the client can fall back to generating a new board. Tokens carry no
// scoring options, so style and resource_on_port are read from the query
// to reproduce the quality reported at generation time.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	b, err := boardurl.Deserialize(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := engine.DefaultOptions()
	if err := parseScoring(r.URL.Query(), &opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	quality := engine.Evaluate(b, opts, s.Gen.Config().BestSpotWeight)
	writeJSON(w, newBoardResponse(b, token, quality))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	recs, err := s.DB.RecentBoards(limit)
	if err != nil {
		slog.Error("history query failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []persistence.BoardRecord{}
	}
	writeJSON(w, recs)
}

func (s *Server) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	rec, err := s.DB.GetBoard(r.PathValue("id"))
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		http.Error(w, "board not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("history lookup failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
