package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-logr/logr"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Logger: logr.Discard()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected an error for an empty base URL")
	}
	if _, err := NewClient(Config{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatal("expected an error for a non-http scheme")
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "events": []any{}})
	}))
	client.SetToken("tok-123")

	if _, err := client.Events(context.Background()); err != nil {
		t.Fatalf("events: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected a request id on every call")
	}
}

func TestClient_UnauthorizedFiresHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"success": false, "message": "jwt expired"})
	}))
	t.Cleanup(srv.Close)

	var hookCalls atomic.Int64
	client, err := NewClient(Config{
		BaseURL:        srv.URL,
		Logger:         logr.Discard(),
		OnUnauthorized: func() { hookCalls.Add(1) },
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Profile(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if got := hookCalls.Load(); got != 1 {
		t.Fatalf("expected the hook to fire once, fired %d times", got)
	}
}

func TestClient_BackendRejectionCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{"success": false, "message": "seat A4 already sold"})
	}))

	_, err := client.CreateOrder(context.Background(), OrderParams{EventID: "e1", Seats: []string{"A4"}})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "seat A4 already sold" {
		t.Fatalf("unexpected error payload: %+v", apiErr)
	}
}

func TestClient_SuccessFalseIsARejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "invalid credentials"})
	}))

	_, err := client.Login(context.Background(), LoginParams{Email: "a@x", Password: "wrong"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if client.Token() != "" {
		t.Fatal("a failed login must not install a token")
	}
}

func TestClient_UnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(Config{BaseURL: srv.URL, Logger: logr.Discard()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()

	if _, err := client.Events(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))

	if _, err := client.Events(context.Background()); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestClient_LoginInstallsTokenLogoutClearsIt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok-9",
			"user":    map[string]any{"_id": "u9", "name": "Nia", "email": "nia@x", "role": "user"},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"success": false, "message": "boom"})
	})
	client, _ := newTestClient(t, mux)

	res, err := client.Login(context.Background(), LoginParams{Email: "nia@x", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != "u9" || client.Token() != "tok-9" {
		t.Fatalf("unexpected login result %+v token %q", res, client.Token())
	}

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected the failed logout call to report its error")
	}
	if client.Token() != "" {
		t.Fatal("logout must clear the token even when the call fails")
	}
}

func TestClient_DownloadTicketsReturnsRawBytes(t *testing.T) {
	payload := []byte("PK\x03\x04 fake zip")
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/download-tickets/ord-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))

	got, err := client.DownloadTickets(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("download tickets: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected raw body back, got %q", got)
	}
}

func TestClient_ResourceRoundTrips(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events/get-all-events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"events": []map[string]any{{
				"_id": "e1", "title": "Jazz Night", "ticketPrice": 25.5,
				"totalSeats": 120, "availableSeats": 7, "isPublished": true,
				"venue": map[string]any{"_id": "v1", "name": "City Hall", "capacity": 300},
			}},
		})
	})
	mux.HandleFunc("/api/categories/get-category", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success":    true,
			"categories": []map[string]any{{"_id": "c1", "name": "Music"}},
		})
	})
	mux.HandleFunc("/api/admin/admin-dashboard-stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"stats":   map[string]any{"totalUsers": 3, "totalEvents": 1, "totalOrders": 9, "totalRevenue": 810.0},
		})
	})
	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	events, err := client.Events(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Jazz Night" || events[0].Venue == nil || events[0].Venue.Name != "City Hall" {
		t.Fatalf("unexpected events %+v", events)
	}

	categories, err := client.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Music" {
		t.Fatalf("unexpected categories %+v", categories)
	}

	stats, err := client.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalOrders != 9 || stats.TotalRevenue != 810.0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
