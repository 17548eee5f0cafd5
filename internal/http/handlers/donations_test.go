package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"charityfund/internal/domain"
)

func TestDonationsCreate(t *testing.T) {
	app, store, rec := newTestApp()

	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, asUser(newRequest(http.MethodPost, "/donation/", `{"full_amount":250,"comment":"for the shelter"}`), "user-1"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	if rec.runs != 1 {
		t.Fatalf("expected one reconciliation, got %d", rec.runs)
	}

	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["full_amount"] != float64(250) || payload["comment"] != "for the shelter" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	for _, hidden := range []string{"user_id", "invested_amount", "fully_invested", "close_date"} {
		if _, ok := payload[hidden]; ok {
			t.Fatalf("payload exposes %q: %v", hidden, payload)
		}
	}

	stored, err := store.ListDonationsByUser(context.Background(), "user-1")
	if err != nil || len(stored) != 1 {
		t.Fatalf("stored donations = %v, %v", stored, err)
	}
}

func TestDonationsCreateRejectsBadInput(t *testing.T) {
	app, store, rec := newTestApp()

	tests := []struct {
		name string
		body string
		user string
		want int
	}{
		{name: "no user", body: `{"full_amount":10}`, want: http.StatusUnauthorized},
		{name: "zero", body: `{"full_amount":0}`, user: "u", want: http.StatusUnprocessableEntity},
		{name: "negative", body: `{"full_amount":-1}`, user: "u", want: http.StatusUnprocessableEntity},
		{name: "fraction", body: `{"full_amount":1.5}`, user: "u", want: http.StatusBadRequest},
		{name: "malformed", body: `{`, user: "u", want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(http.MethodPost, "/donation/", tc.body)
			if tc.user != "" {
				req = asUser(req, tc.user)
			}
			rr := httptest.NewRecorder()
			app.DonationsCreate(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("got %d want %d (%s)", rr.Code, tc.want, rr.Body.String())
			}
		})
	}

	all, _ := store.ListDonations(context.Background())
	if len(all) != 0 || rec.runs != 0 {
		t.Fatalf("rejected requests must not persist or reconcile: donations=%d runs=%d", len(all), rec.runs)
	}
}

func TestDonationsCreateReconcileFailure(t *testing.T) {
	app, _, rec := newTestApp()
	rec.err = errors.New("lock unavailable")

	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, asUser(newRequest(http.MethodPost, "/donation/", `{"full_amount":5}`), "u"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rr.Code)
	}
}

func TestDonationsMineOnlyReturnsCallerDonations(t *testing.T) {
	app, store, _ := newTestApp()
	ctx := context.Background()
	for _, owner := range []string{"alice", "bob", "alice"} {
		d := &domain.Donation{UserID: owner, Fundable: domain.Fundable{FullAmount: 10}}
		if err := store.CreateDonation(ctx, d); err != nil {
			t.Fatalf("CreateDonation() error: %v", err)
		}
	}

	rr := httptest.NewRecorder()
	app.DonationsMine(rr, asUser(newRequest(http.MethodGet, "/donation/my", ""), "alice"))
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	var items []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(items))
	}

	rr = httptest.NewRecorder()
	app.DonationsList(rr, newRequest(http.MethodGet, "/donation/", ""))
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 3 || items[1]["user_id"] != "bob" {
		t.Fatalf("admin list = %v", items)
	}
	if _, ok := items[0]["invested_amount"]; !ok {
		t.Fatalf("admin list lacks allocation fields: %v", items[0])
	}
}
