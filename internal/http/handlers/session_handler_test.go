// README: Handler tests for the session and booking flow.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"wheels/internal/http/handlers"
	"wheels/internal/modules/booking"
	"wheels/internal/modules/fare"
	"wheels/internal/modules/session"
	"wheels/internal/modules/trip"
)

// stubResolver is a test double for distance.Resolver.
type stubResolver struct {
	km float64
}

func (s *stubResolver) Resolve(_ context.Context, _ trip.Configuration) float64 {
	return s.km
}

type fixture struct {
	router   *gin.Engine
	sessions *session.MemoryStore
}

// buildFixture wires a minimal Gin engine with the session and booking
// handlers against in-memory state and the given fake endpoints.
func buildFixture(pricingURL, reservationURL string) fixture {
	gin.SetMode(gin.TestMode)
	sessions := session.NewMemoryStore()
	sh := handlers.NewSessionHandler(sessions, &stubResolver{km: 120}, fare.NewClient(pricingURL, nil), nil)
	bh := handlers.NewBookingHandler(booking.NewService(booking.ServiceDeps{
		Sessions:       sessions,
		ReservationURL: reservationURL,
	}))

	r := gin.New()
	r.POST("/api/trips/validate", handlers.NewTripHandler().Validate)
	r.PUT("/api/sessions/:profile", sh.Select)
	r.GET("/api/sessions/:profile", sh.Get)
	r.DELETE("/api/sessions/:profile", sh.Clear)
	r.POST("/api/sessions/:profile/quote", sh.Quote)
	r.POST("/api/sessions/:profile/submit", bh.Submit)
	return fixture{router: r, sessions: sessions}
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func selectBody() map[string]any {
	return map[string]any{
		"trip": map[string]any{
			"trip_type":       "oneway",
			"pickup_location": "Pune",
			"drop_location":   "Mumbai",
			"pickup_date":     "2030-01-15",
			"pickup_time":     "10:00",
		},
		"vehicle": map[string]any{
			"id":    "cab-17",
			"name":  "Swift Dzire",
			"seats": 4,
			"price": 2000,
		},
	}
}

func TestSelect_SavesSessionWithDistanceAndQuote(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	w := doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	sess, err := f.sessions.Load(context.Background(), "p1")
	if err != nil || sess == nil {
		t.Fatalf("session not saved: %v", err)
	}
	if sess.DistanceKm != 120 {
		t.Errorf("distance = %v, want stub 120", sess.DistanceKm)
	}
	if sess.Quote.Total.Amount != 2300 {
		t.Errorf("provisional total = %d, want 2300", sess.Quote.Total.Amount)
	}
	if sess.Quote.Calculated {
		t.Error("provisional quote must not be calculated")
	}
}

func TestSelect_InvalidTripRejected(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	body := selectBody()
	body["trip"].(map[string]any)["pickup_location"] = ""
	w := doRequest(f.router, http.MethodPut, "/api/sessions/p1", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if sess, _ := f.sessions.Load(context.Background(), "p1"); sess != nil {
		t.Error("invalid selection must not create a session")
	}
}

func TestGet_NoSessionNoParams(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	w := doRequest(f.router, http.MethodGet, "/api/sessions/p1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGet_FallsBackToQueryParamsAndPersists(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	w := doRequest(f.router, http.MethodGet,
		"/api/sessions/p1?trip_type=oneway&pickup_location=Pune&drop_location=Mumbai&pickup_date=2030-01-15&pickup_time=10:00", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	sess, _ := f.sessions.Load(context.Background(), "p1")
	if sess == nil {
		t.Fatal("query-built trip must be saved as the new session")
	}
	if sess.Trip.PickupLocation != "Pune" {
		t.Errorf("pickup = %q, want Pune", sess.Trip.PickupLocation)
	}
}

func TestClear(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	w := doRequest(f.router, http.MethodDelete, "/api/sessions/p1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if sess, _ := f.sessions.Load(context.Background(), "p1"); sess != nil {
		t.Error("session should be gone after delete")
	}
}

func TestQuote_SuccessUpdatesSession(t *testing.T) {
	pricing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"driverrate": 300, "gst": 150, "service": 250, "total": 2700}`))
	}))
	defer pricing.Close()

	f := buildFixture(pricing.URL, "http://unused.invalid")
	doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/quote", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	sess, _ := f.sessions.Load(context.Background(), "p1")
	if sess == nil || !sess.Quote.Calculated {
		t.Fatal("authoritative quote must be stored on the session")
	}
	if sess.Quote.Total.Amount != 2700 {
		t.Errorf("total = %d, want 2700", sess.Quote.Total.Amount)
	}
}

func TestQuote_FailureIsBlocking(t *testing.T) {
	pricing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer pricing.Close()

	f := buildFixture(pricing.URL, "http://unused.invalid")
	doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/quote", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	sess, _ := f.sessions.Load(context.Background(), "p1")
	if sess.Quote.Calculated {
		t.Error("failed pricing call must not mark the quote calculated")
	}
}

func TestQuote_NoSession(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/quote", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/submit", map[string]any{
		"name":  "Asha",
		"email": "asha@example.com",
		"phone": "12345",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmit_Confirmed(t *testing.T) {
	reservation := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "bookingId": "WTL123"}`))
	}))
	defer reservation.Close()

	f := buildFixture("http://unused.invalid", reservation.URL)
	doRequest(f.router, http.MethodPut, "/api/sessions/p1", selectBody())
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/submit", map[string]any{
		"name":  "Asha",
		"email": "asha@example.com",
		"phone": "9876543210",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res booking.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Status != booking.StatusConfirmed || res.BookingID != "WTL123" {
		t.Errorf("result = %+v, want confirmed WTL123", res)
	}
	if sess, _ := f.sessions.Load(context.Background(), "p1"); sess != nil {
		t.Error("confirmed booking must clear the session")
	}
}

func TestSubmit_NoSession(t *testing.T) {
	f := buildFixture("http://unused.invalid", "http://unused.invalid")
	w := doRequest(f.router, http.MethodPost, "/api/sessions/p1/submit", map[string]any{
		"name":  "Asha",
		"email": "asha@example.com",
		"phone": "9876543210",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
