package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"github.com/elcappfet/menuapi/internal/imagegen"
	"github.com/elcappfet/menuapi/internal/parse"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testMenuURL = "https://example.test/menu"

const testPageHTML = `<html><body>
  <h1 class="titreMenu"><span>Du 6 au 10 Octobre</span></h1>
  <div class="ligneSemaine">
    <div class="dayName">Lundi</div>
    <div class="panelMenu">
      <div class="menu-titre">Menu Bistro</div>
      <div class="containMenu"><span>Emincé de poulet</span></div>
      <div class="menu-prix">CHF 14.90</div>
    </div>
    <div class="panelMenu">
      <div class="menu-titre">Dessert</div>
      <div class="containMenu"><span>Tarte</span></div>
    </div>
  </div>
</body></html>`

type stubFetcher struct {
	body string
	err  error
}

func (f *stubFetcher) Get(ctx context.Context, url string) (string, error) {
	return f.body, f.err
}

type stubImageClient struct {
	calls int
}

func (s *stubImageClient) CreateImage(_ context.Context, _ openai.ImageRequest) (openai.ImageResponse, error) {
	s.calls++
	return openai.ImageResponse{
		Data: []openai.ImageResponseDataInner{
			{B64JSON: base64.StdEncoding.EncodeToString([]byte("fake-png"))},
		},
	}, nil
}

func newTestServer(fetcher Fetcher, images *imagegen.Generator) *Server {
	return New(fetcher, parse.New(testMenuURL), testMenuURL, images)
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	w := do(t, s, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestGetMenus(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	w := do(t, s, http.MethodGet, "/menus")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true {
		t.Fatalf("expected success=true")
	}
	data := body["data"].(map[string]any)
	if data["semaine"] != "Du 6 au 10 Octobre" {
		t.Fatalf("unexpected semaine: %v", data["semaine"])
	}
	jours := data["jours"].(map[string]any)
	lundi, ok := jours["lundi"].(map[string]any)
	if !ok {
		t.Fatalf("expected a lundi entry, got %v", jours)
	}
	bistro := lundi["bistro"].(map[string]any)
	if bistro["prix"] != "CHF 14.90" {
		t.Fatalf("unexpected price: %v", bistro["prix"])
	}
	if lundi["vitality"] != nil {
		t.Fatalf("expected null vitality, got %v", lundi["vitality"])
	}
	md := body["metadata"].(map[string]any)
	if md["total_jours"].(float64) != 1 {
		t.Fatalf("unexpected total_jours: %v", md["total_jours"])
	}
}

func TestGetTodayMenu_FallbackAndAvailability(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	w := do(t, s, http.MethodGet, "/menus/today")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	data := body["data"].(map[string]any)
	// Single-day fixture: whatever today is, the handler resolves lundi.
	if data["jour"] != "lundi" {
		t.Fatalf("expected lundi, got %v", data["jour"])
	}
	bistro := data["bistro"].(map[string]any)
	if bistro["disponible"] != true {
		t.Fatalf("expected bistro disponible=true: %v", bistro)
	}
	vitality := data["vitality"].(map[string]any)
	if vitality["disponible"] != false {
		t.Fatalf("expected vitality disponible=false: %v", vitality)
	}
	md := body["metadata"].(map[string]any)
	if md["endpoint"] != "today" {
		t.Fatalf("expected endpoint marker, got %v", md["endpoint"])
	}
}

func TestGetWeeklyMenu(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	w := do(t, s, http.MethodGet, "/menus/weekly")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	jours := body["data"].(map[string]any)["jours"].(map[string]any)
	lundi := jours["lundi"].(map[string]any)
	if lundi["bistro"].(map[string]any)["disponible"] != true {
		t.Fatalf("expected availability flag on weekly view")
	}
}

func TestGetDayMenu_FoundAndNotFound(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)

	w := do(t, s, http.MethodGet, "/menus/LUNDI")
	if w.Code != http.StatusOK {
		t.Fatalf("expected case-insensitive match, got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/menus/samedi")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decode(t, w)
	days, ok := body["jours_disponibles"].([]any)
	if !ok || len(days) != 1 || days[0] != "lundi" {
		t.Fatalf("404 must list available days, got %v", body)
	}
}

func TestFetchErrorMapsTo503(t *testing.T) {
	s := newTestServer(&stubFetcher{err: errors.New("connection refused")}, nil)
	w := do(t, s, http.MethodGet, "/menus")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	body := decode(t, w)
	if !strings.HasPrefix(body["detail"].(string), "Erreur de connexion") {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestParseErrorMapsTo500(t *testing.T) {
	s := newTestServer(&stubFetcher{body: "<html><body>vide</body></html>"}, nil)
	w := do(t, s, http.MethodGet, "/menus")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decode(t, w)
	if !strings.Contains(body["detail"].(string), "Structure HTML non reconnue") {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestImageRoutes_DisabledWithoutGenerator(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	for _, path := range []string{"/images/menu/Bistro/Couscous", "/images/cache/stats"} {
		w := do(t, s, http.MethodGet, path)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 for %s, got %d", path, w.Code)
		}
	}
	w := do(t, s, http.MethodDelete, "/images/cache")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for cache delete, got %d", w.Code)
	}
}

func TestGetMenuImage(t *testing.T) {
	stub := &stubImageClient{}
	g := imagegen.NewGenerator(stub, "", time.Hour)
	s := newTestServer(&stubFetcher{body: testPageHTML}, g)

	w := do(t, s, http.MethodGet, "/images/menu/Bistro/Couscous%20royal%20CHF%2015.00")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=7200") {
		t.Fatalf("expected 2h cache header, got %q", cc)
	}
	if w.Body.String() != "fake-png" {
		t.Fatalf("unexpected image body: %q", w.Body.String())
	}

	// Same dish with different price formatting hits the same cache entry.
	w = do(t, s, http.MethodGet, "/images/menu/Bistro/Couscous%20royal%20%20CHF%2015.00")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat, got %d", w.Code)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one backend call, got %d", stub.calls)
	}
}

func TestImageCacheStatsAndClear(t *testing.T) {
	stub := &stubImageClient{}
	g := imagegen.NewGenerator(stub, "", time.Hour)
	s := newTestServer(&stubFetcher{body: testPageHTML}, g)

	if w := do(t, s, http.MethodGet, "/images/menu/Bistro/Pizza"); w.Code != http.StatusOK {
		t.Fatalf("seed generation failed: %d", w.Code)
	}

	w := do(t, s, http.MethodGet, "/images/cache/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	stats := decode(t, w)
	if stats["total_entries"].(float64) != 1 {
		t.Fatalf("expected one cached entry, got %v", stats["total_entries"])
	}

	w = do(t, s, http.MethodDelete, "/images/cache")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["entries_removed"].(float64) != 1 {
		t.Fatalf("expected one removed entry, got %v", body["entries_removed"])
	}
}

func TestGetWeeklyMenuPDF(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	w := do(t, s, http.MethodGet, "/menus/weekly/pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("expected a PDF document")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&stubFetcher{body: testPageHTML}, nil)
	do(t, s, http.MethodGet, "/health")
	w := do(t, s, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}
