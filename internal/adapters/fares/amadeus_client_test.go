package fares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.Handler) *AmadeusClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewAmadeusClient("id", "secret", srv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewAmadeusClientRequiresCredentials(t *testing.T) {
	if _, err := NewAmadeusClient("", "secret", "", 0); err == nil {
		t.Fatal("expected error for empty client id")
	}
}

func TestAccessTokenSendsClientCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != tokenPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") != "id" ||
			r.PostForm.Get("client_secret") != "secret" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Write([]byte(`{"access_token":"tok-123","expires_in":1799}`))
	}))

	tok, err := c.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token = %q", tok)
	}
}

func TestAccessTokenMissing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))

	if _, err := c.AccessToken(context.Background()); !errors.Is(err, ErrNoAccessToken) {
		t.Fatalf("error = %v, want ErrNoAccessToken", err)
	}
}

func TestAccessTokenHTTPError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := c.AccessToken(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Fatalf("error = %v, want StatusError 401", err)
	}
}

func TestLowestOneWayFarePicksMinimum(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != offersPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		q := r.URL.Query()
		want := map[string]string{
			"originLocationCode":      "HAK",
			"destinationLocationCode": "SHA",
			"departureDate":           "2026-02-27",
			"adults":                  "1",
			"nonStop":                 "false",
			"max":                     "20",
			"currencyCode":            "CNY",
		}
		for k, v := range want {
			if q.Get(k) != v {
				t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
			}
		}
		w.Write([]byte(`{"data":[
			{"price":{"total":"880.50","currency":"CNY"}},
			{"price":{"total":612.3}},
			{"price":{"currency":"CNY"}},
			{"price":{"total":"701.00","currency":"CNY"}}
		]}`))
	}))

	fare, err := c.LowestOneWayFare(context.Background(), "tok", "HAK", "SHA", "2026-02-27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fare.Amount != 612.3 || fare.Currency != "CNY" {
		t.Fatalf("fare = %+v, want 612.3 CNY", fare)
	}
}

func TestLowestOneWayFareNoOffers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))

	_, err := c.LowestOneWayFare(context.Background(), "tok", "HAK", "SHA", "2026-02-27")
	var ne *NoOfferError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want NoOfferError", err)
	}
	if ne.Origin != "HAK" || ne.Destination != "SHA" {
		t.Fatalf("unexpected error fields %+v", ne)
	}
}

func TestLowestOneWayFareMalformed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"price":{"currency":"CNY"}},{"price":{"total":"n/a"}}]}`))
	}))

	_, err := c.LowestOneWayFare(context.Background(), "tok", "HAK", "SHA", "2026-02-27")
	var me *MalformedOfferError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want MalformedOfferError", err)
	}
}

func TestLowestOneWayFareServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := c.LowestOneWayFare(context.Background(), "tok", "HAK", "SHA", "2026-02-27")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("error = %v, want StatusError 502", err)
	}
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"12.50", 12.5, true},
		{" 7 ", 7, true},
		{float64(3.25), 3.25, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTotal(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("parseTotal(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
