package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/hexboard/internal/engine"
	"github.com/talgya/hexboard/internal/persistence"
)

func newTestServer(t *testing.T, db *persistence.DB) *Server {
	t.Helper()
	return &Server{
		Gen: engine.New(engine.Config{MinAttempts: 2, MaxFailures: 10000, Seed: 1}),
		DB:  db,
	}
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func boardSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "board.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return s
}

func validateBoard(t *testing.T, s *jsonschema.Schema, body []byte) boardResponse {
	t.Helper()
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := s.Validate(v); err != nil {
		t.Fatalf("validate: %v\n%s", err, body)
	}
	var resp boardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestShapes(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	rec := get(t, h, "/api/v1/shapes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var shapes []shapeSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &shapes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(shapes) != 5 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	if shapes[0].Shape != "standard" || shapes[0].Key != "s" || shapes[0].Hexes != 19 || shapes[0].Ports != 9 {
		t.Fatalf("standard: %+v", shapes[0])
	}
}

func TestGenerate_MatchesSchema(t *testing.T) {
	schema := boardSchema(t)
	h := newTestServer(t, nil).Handler()

	for _, url := range []string{
		"/api/v1/board",
		"/api/v1/board?shape=standard&desert=center&resources=1&numbers=1",
		"/api/v1/board?shape=expansion6&shuffle_ports=true&resource_on_port=true",
		"/api/v1/board?shape=Seafarers1&numbers=0&resources=0",
		"/api/v1/board?shape=dragons&desert=coast",
		"/api/v1/board?style=cities-and-knights&resource_on_port=true",
	} {
		rec := get(t, h, url)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d: %s", url, rec.Code, rec.Body)
		}
		resp := validateBoard(t, schema, rec.Body.Bytes())
		if resp.Search == nil || resp.Search.Attempts < 2 {
			t.Fatalf("%s: search info %+v", url, resp.Search)
		}
		if resp.ID != "" {
			t.Fatalf("%s: id without a database", url)
		}
	}
}

func TestGenerate_UnboundedTargetOmitted(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	rec := get(t, h, "/api/v1/board?numbers=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp boardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Search.Target != nil {
		t.Fatalf("target %v for greedy numbers", *resp.Search.Target)
	}
}

func TestGenerate_BadParams(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	cases := []string{
		"shape=hexagon",
		"desert=middle",
		"resources=2",
		"numbers=half",
		"shuffle_ports=maybe",
		"resource_on_port=2",
		"style=seafarers",
	}
	for _, q := range cases {
		t.Run(q, func(t *testing.T) {
			if rec := get(t, h, "/api/v1/board?"+q); rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d", rec.Code)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	schema := boardSchema(t)
	h := newTestServer(t, nil).Handler()

	rec := get(t, h, "/api/v1/board?shape=expansion6&shuffle_ports=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status %d", rec.Code)
	}
	generated := validateBoard(t, schema, rec.Body.Bytes())

	rec = get(t, h, "/api/v1/board/"+generated.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("decode status %d: %s", rec.Code, rec.Body)
	}
	decoded := validateBoard(t, schema, rec.Body.Bytes())
	if decoded.Token != generated.Token || decoded.Shape != generated.Shape || decoded.Search != nil {
		t.Fatalf("decoded %s/%s", decoded.Shape, decoded.Token)
	}
	if len(decoded.Hexes) != len(generated.Hexes) {
		t.Fatalf("hex count %d want %d", len(decoded.Hexes), len(generated.Hexes))
	}
	for i, hx := range generated.Hexes {
		got := decoded.Hexes[i]
		if got.Coord != hx.Coord || got.Resource != hx.Resource || got.RollNumber != hx.RollNumber {
			t.Fatalf("hex %d: %+v want %+v", i, got, hx)
		}
	}
	for i, p := range generated.Ports {
		if decoded.Ports[i].Resource != p.Resource {
			t.Fatalf("port %d: %s want %s", i, decoded.Ports[i].Resource, p.Resource)
		}
	}
}

func TestDecode_ScoresWithQueryOptions(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	const scoring = "style=ck&resource_on_port=true"

	rec := get(t, h, "/api/v1/board?shuffle_ports=true&"+scoring)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status %d", rec.Code)
	}
	var generated boardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &generated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if generated.Search.Options.GameStyle != engine.StyleCitiesAndKnights {
		t.Fatalf("style %q", generated.Search.Options.GameStyle)
	}

	quality := func(query string) float64 {
		t.Helper()
		rec := get(t, h, "/api/v1/board/"+generated.Token+query)
		if rec.Code != http.StatusOK {
			t.Fatalf("decode%s status %d: %s", query, rec.Code, rec.Body)
		}
		var resp boardResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp.Quality
	}
	if got := quality("?" + scoring); got != generated.Quality {
		t.Fatalf("decoded quality %v, generated %v", got, generated.Quality)
	}
	if got := quality(""); got == generated.Quality {
		t.Fatalf("default scoring matched cities & knights scoring: %v", got)
	}
	if rec := get(t, h, "/api/v1/board/"+generated.Token+"?style=bogus"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad style: status %d", rec.Code)
	}
}

func TestDecode_UnsupportedToken(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	for _, token := range []string{"9s12-34", "0q12-34", "0s-", "0s12"} {
		if rec := get(t, h, "/api/v1/board/"+token); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", token, rec.Code)
		}
	}
}

func TestHistory(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "boards.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	h := newTestServer(t, db).Handler()

	var ids []string
	for i := 0; i < 2; i++ {
		rec := get(t, h, "/api/v1/board?shape=standard")
		if rec.Code != http.StatusOK {
			t.Fatalf("generate status %d", rec.Code)
		}
		var resp boardResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID == "" {
			t.Fatalf("board was not saved")
		}
		ids = append(ids, resp.ID)
	}

	rec := get(t, h, "/api/v1/history?limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status %d", rec.Code)
	}
	var recs []persistence.BoardRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("history has %d boards", len(recs))
	}

	rec = get(t, h, "/api/v1/history/"+ids[0])
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status %d", rec.Code)
	}
	var one persistence.BoardRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &one); err != nil || one.ID != ids[0] {
		t.Fatalf("detail %+v, %v", one, err)
	}

	if rec := get(t, h, "/api/v1/history/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing board status %d", rec.Code)
	}
}

func TestHistory_Disabled(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	if rec := get(t, h, "/api/v1/history"); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	s := newTestServer(t, nil)
	s.RateLimit = 1
	h := s.Handler()

	if rec := get(t, h, "/api/v1/board"); rec.Code != http.StatusOK {
		t.Fatalf("first request status %d", rec.Code)
	}
	rec := get(t, h, "/api/v1/board")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("no Retry-After header")
	}
	// Decoding is not limited.
	if rec := get(t, h, "/api/v1/shapes"); rec.Code != http.StatusOK {
		t.Fatalf("shapes status %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil)
	s.CORSOrigins = []string{"https://boards.example"}
	h := s.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/shapes", nil)
	req.Header.Set("Origin", "https://boards.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://boards.example" {
		t.Fatalf("allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/shapes", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin allowed: %q", got)
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatalf("first two requests denied")
	}
	if rl.Allow("a") {
		t.Fatalf("third request allowed")
	}
	if !rl.Allow("b") {
		t.Fatalf("other client denied")
	}
	if got := rl.RetryAfter("a"); got != 61 {
		t.Fatalf("retry after %d", got)
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatalf("denied after window reset")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("remote addr: %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("forwarded: %q", got)
	}
}
