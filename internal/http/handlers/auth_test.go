package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charityfund/internal/middleware"
)

func TestAuthLogin(t *testing.T) {
	app, _, _ := newTestApp()
	app.Auth = AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		SuperuserEmail:    "root@fund.example",
		SuperuserPassword: "hunter2",
	}

	rr := httptest.NewRecorder()
	app.AuthLogin(rr, newRequest(http.MethodPost, "/auth/jwt/login", `{"email":"Root@Fund.Example","password":"hunter2"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	var resp loginResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TokenType != "bearer" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	claims, err := middleware.VerifyJWT("test-secret", resp.AccessToken)
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}
	if claims.Subject != "root@fund.example" || !claims.Superuser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthLoginRejects(t *testing.T) {
	configured := AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		SuperuserEmail:    "root@fund.example",
		SuperuserPassword: "hunter2",
	}

	tests := []struct {
		name string
		auth AuthConfig
		body string
		want int
	}{
		{name: "wrong password", auth: configured, body: `{"email":"root@fund.example","password":"nope"}`, want: http.StatusUnauthorized},
		{name: "wrong email", auth: configured, body: `{"email":"other@fund.example","password":"hunter2"}`, want: http.StatusUnauthorized},
		{name: "no superuser configured", auth: AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, body: `{"email":"","password":""}`, want: http.StatusUnauthorized},
		{name: "malformed", auth: configured, body: `{"email":`, want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, _, _ := newTestApp()
			app.Auth = tc.auth
			rr := httptest.NewRecorder()
			app.AuthLogin(rr, newRequest(http.MethodPost, "/auth/jwt/login", tc.body))
			if rr.Code != tc.want {
				t.Fatalf("got %d want %d (%s)", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}
