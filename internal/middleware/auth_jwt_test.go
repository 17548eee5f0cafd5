package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	claims := NewTokenClaims("user-123", true, time.Hour)
	token, err := SignJWT("test-secret", claims)
	if err != nil {
		t.Fatalf("SignJWT() unexpected error: %v", err)
	}
	parsed, err := VerifyJWT("test-secret", token)
	if err != nil {
		t.Fatalf("VerifyJWT() unexpected error: %v", err)
	}
	if parsed.Subject != "user-123" || !parsed.Superuser {
		t.Fatalf("VerifyJWT() returned %+v", parsed)
	}
}

func TestVerifyJWTInvalidSignature(t *testing.T) {
	token, err := SignJWT("secret-a", NewTokenClaims("user-123", false, time.Hour))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret-b", token); err == nil {
		t.Fatalf("VerifyJWT() expected invalid signature error")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	token, err := SignJWT("secret", NewTokenClaims("user-123", false, -time.Minute))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() expected expiration error")
	}
}

func TestVerifyJWTRequiresSubject(t *testing.T) {
	token, err := SignJWT("secret", NewTokenClaims("", false, time.Hour))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() expected error for empty subject")
	}
}

func TestAuthGuards(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	userToken, _ := SignJWT("secret", NewTokenClaims("user-1", false, time.Hour))
	adminToken, _ := SignJWT("secret", NewTokenClaims("admin-1", true, time.Hour))

	tests := []struct {
		name   string
		guard  func(http.Handler) http.Handler
		header string
		want   int
	}{
		{name: "anonymous passes auth", guard: func(h http.Handler) http.Handler { return h }, want: http.StatusNoContent},
		{name: "garbage token rejected", guard: func(h http.Handler) http.Handler { return h }, header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong scheme rejected", guard: func(h http.Handler) http.Handler { return h }, header: "Basic abc", want: http.StatusUnauthorized},
		{name: "user required anonymous", guard: RequireUser, want: http.StatusUnauthorized},
		{name: "user required user", guard: RequireUser, header: "Bearer " + userToken, want: http.StatusNoContent},
		{name: "superuser required user", guard: RequireSuperuser, header: "Bearer " + userToken, want: http.StatusForbidden},
		{name: "superuser required admin", guard: RequireSuperuser, header: "Bearer " + adminToken, want: http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := AuthJWT("secret")(tc.guard(ok))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("got status %d, want %d", rr.Code, tc.want)
			}
		})
	}
}
