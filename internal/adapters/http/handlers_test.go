package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/railfare/internal/adapters/http"
	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/ports"
	"github.com/samirrijal/railfare/internal/core/usecases"
)

// ---- Mocks ----

type mockCache struct {
	pingFn func(ctx context.Context) error
}

func (m *mockCache) Lookup(ctx context.Context, key string) (*domain.FareQuote, error) {
	return nil, ports.ErrCacheMiss
}

func (m *mockCache) Store(ctx context.Context, key string, q *domain.FareQuote, ttl time.Duration) error {
	return nil
}

func (m *mockCache) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type mockBroker struct {
	connected bool
}

func (m *mockBroker) Connected() bool { return m.connected }

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Fares: usecases.NewFareService(nil, nil, 0),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func decodeError(t *testing.T, body io.Reader) handler.APIError {
	t.Helper()
	var apiErr handler.APIError
	if err := json.Unmarshal(readBody(t, body), &apiErr); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return apiErr
}

// ---- Fare quote handler tests ----

func TestQuoteFare_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/fares/quote?from=tokyo&to=himeji&train=nozomi&seat=reserved&trip=round-trip&date=2024-12-28&adults=40&children=20", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var q domain.FareQuote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		t.Fatal(err)
	}
	if q.Total != 1533500 {
		t.Errorf("expected total 1533500, got %d", q.Total)
	}
	if q.Season != domain.Peak {
		t.Errorf("expected peak, got %s", q.Season)
	}
	if q.Breakdown.BillableAdults != 39 {
		t.Errorf("expected 39 billable adults, got %d", q.Breakdown.BillableAdults)
	}
}

func TestQuoteFare_Defaults(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/fares/quote?from=tokyo&to=shin-osaka&date=2024-12-01", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var q domain.FareQuote
	json.NewDecoder(resp.Body).Decode(&q)
	if q.Total != 14400 {
		t.Errorf("expected 14400 for one adult one-way, got %d", q.Total)
	}
	if q.Train != domain.Hikari || q.ReserveType != domain.OneWay {
		t.Errorf("unexpected defaults: train=%s trip=%s", q.Train, q.ReserveType)
	}
}

func TestQuoteFare_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantErr  string
	}{
		{"missing to", "from=tokyo&date=2024-12-01", 400, "bad_request"},
		{"missing date", "from=tokyo&to=himeji", 400, "bad_request"},
		{"unknown station", "from=tokyo&to=kyoto&date=2024-12-01", 400, "bad_request"},
		{"bad date", "from=tokyo&to=himeji&date=2024-13-01", 400, "bad_request"},
		{"same station", "from=tokyo&to=tokyo&date=2024-12-01", 400, "bad_request"},
		{"unknown train", "from=tokyo&to=himeji&date=2024-12-01&train=kodama", 400, "bad_request"},
		{"unknown route", "from=shin-osaka&to=himeji&date=2024-12-01", 422, "unprocessable"},
		{"negative adults", "from=tokyo&to=himeji&date=2024-12-01&adults=-3", 400, "bad_request"},
		{"negative children", "from=tokyo&to=himeji&date=2024-12-01&children=-1", 400, "bad_request"},
		{"huge adult count", "from=tokyo&to=himeji&date=2024-12-01&adults=1125899906842624", 400, "bad_request"},
		{"free riders exceed adults", "from=tokyo&to=himeji&date=2024-12-01&adults=1&children=99", 422, "unprocessable"},
	}

	app := setupApp(makeDeps())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/fares/quote?"+tt.query, nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.StatusCode)
			}
			apiErr := decodeError(t, resp.Body)
			if apiErr.Code != tt.wantErr {
				t.Errorf("expected code %s, got %s", tt.wantErr, apiErr.Code)
			}
			if apiErr.RequestID == "" {
				t.Error("expected request_id in error body")
			}
			if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
				t.Errorf("expected no-store on error, got %q", cc)
			}
		})
	}
}

func TestQuoteFareBody_Success(t *testing.T) {
	app := setupApp(makeDeps())

	body, _ := json.Marshal(usecases.QuoteInput{
		From: "himeji", To: "tokyo", Train: "hikari", Seat: "reserved",
		Trip: "round-trip", Date: "2024-12-01", Adults: 1,
	})
	req := httptest.NewRequest("POST", "/v1/fares/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var q domain.FareQuote
	json.NewDecoder(resp.Body).Decode(&q)
	if q.Total != 29840 {
		t.Errorf("expected 29840, got %d", q.Total)
	}
	if len(q.Breakdown.Discounts) != 1 || q.Breakdown.Discounts[0] != "round_trip" {
		t.Errorf("expected round_trip discount, got %v", q.Breakdown.Discounts)
	}
}

func TestQuoteFareBody_InvalidJSON(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/fares/quote", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestQuoteFare_CacheControlHeader(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/fares/quote?from=tokyo&to=himeji&date=2024-12-01", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "private, max-age=60" {
		t.Errorf("expected private, max-age=60, got %q", cc)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("expected ETag header")
	}
}

// ---- Station handler tests ----

func TestListStations(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stations", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result handler.StationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Stations) != 3 {
		t.Errorf("expected 3 stations, got %d", len(result.Stations))
	}
	if len(result.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(result.Routes))
	}
	if result.Routes[0].DistanceKm != 553 {
		t.Errorf("expected 553 km, got %v", result.Routes[0].DistanceKm)
	}
}

func TestListStations_ETagNotModified(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/stations", nil), -1)
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest("GET", "/v1/stations", nil)
	req.Header.Set("If-None-Match", etag)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 304 {
		t.Fatalf("expected 304, got %d", resp.StatusCode)
	}
}

// ---- GraphQL tests ----

func TestGraphQL_FareQuote(t *testing.T) {
	app := setupApp(makeDeps())

	query := `{"query":"{ fareQuote(from: \"tokyo\", to: \"himeji\", train: \"nozomi\", trip: \"round-trip\", date: \"2024-12-28\", adults: 40, children: 20) { total season free_adults adult_fare { train express } } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			FareQuote struct {
				Total      int    `json:"total"`
				Season     string `json:"season"`
				FreeAdults int    `json:"free_adults"`
				AdultFare  struct {
					Train   int `json:"train"`
					Express int `json:"express"`
				} `json:"adult_fare"`
			} `json:"fareQuote"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	q := result.Data.FareQuote
	if q.Total != 1533500 {
		t.Errorf("expected 1533500, got %d", q.Total)
	}
	if q.Season != "peak" || q.FreeAdults != 1 {
		t.Errorf("unexpected quote: %+v", q)
	}
	if q.AdultFare.Train != 9000 || q.AdultFare.Express != 6650 {
		t.Errorf("unexpected adult fare: %+v", q.AdultFare)
	}
}

func TestGraphQL_Stations(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{"query":"{ stations routes { from to distance_km } }"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)

	var result struct {
		Data struct {
			Stations []string `json:"stations"`
			Routes   []struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"routes"`
		} `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if strings.Join(result.Data.Stations, ",") != "tokyo,shin-osaka,himeji" {
		t.Errorf("unexpected stations: %v", result.Data.Stations)
	}
	if len(result.Data.Routes) != 2 || result.Data.Routes[1].To != "himeji" {
		t.Errorf("unexpected routes: %+v", result.Data.Routes)
	}
}

func TestGraphQL_UnknownRouteReturnsError(t *testing.T) {
	app := setupApp(makeDeps())

	query := `{"query":"{ fareQuote(from: \"shin-osaka\", to: \"himeji\", date: \"2024-12-01\") { total } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)

	body := readBody(t, resp.Body)
	if !strings.Contains(string(body), "unknown route") {
		t.Errorf("expected unknown route error, got %s", body)
	}
}

// ---- Health handler tests ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", result["status"])
	}
}

func TestReady_NothingConfigured(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReady_CacheDown(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Cache = &mockCache{pingFn: func(ctx context.Context) error { return errors.New("connection refused") }}
		d.Broker = &mockBroker{connected: true}
	})
	app := setupApp(deps)

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}

	var result struct {
		Checks map[string]string `json:"checks"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Checks["nats"] != "ok" {
		t.Errorf("expected nats ok, got %q", result.Checks["nats"])
	}
	if !strings.HasPrefix(result.Checks["cache"], "error:") {
		t.Errorf("expected cache error, got %q", result.Checks["cache"])
	}
}

func TestReady_BrokerDisconnected(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Cache = &mockCache{}
		d.Broker = &mockBroker{connected: false}
	})
	app := setupApp(deps)

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Headers ----

func TestAPIVersionHeader(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if v := resp.Header.Get("X-API-Version"); v != "1.0.0" {
		t.Errorf("expected X-API-Version 1.0.0, got %q", v)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(makeDeps())

	app.Test(httptest.NewRequest("GET", "/v1/fares/quote?from=tokyo&to=himeji&date=2024-12-01", nil), -1)
	resp, _ := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := string(readBody(t, resp.Body))
	if !strings.Contains(body, "railfare_fare_quotes_total") {
		t.Error("expected railfare_fare_quotes_total in metrics output")
	}
}

// TestAccessLogMiddleware verifies the middleware passes responses through.
func TestAccessLogMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(handler.RequestIDLogMiddleware())
	app.Use(handler.AccessLogMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp.Body); !strings.Contains(string(body), "ok") {
		t.Errorf("expected response body to contain 'ok', got %s", body)
	}
}
