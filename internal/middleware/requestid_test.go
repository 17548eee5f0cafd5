package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	const known = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "missing", header: ""},
		{name: "valid uuid", header: known, keep: true},
		{name: "garbage", header: "not-a-uuid\r\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
			if tc.header != "" {
				req.Header.Set("X-Request-ID", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("request id %q is not a uuid", seen)
			}
			if tc.keep && seen != tc.header {
				t.Fatalf("request id = %q, want %q", seen, tc.header)
			}
			if got := rr.Header().Get("X-Request-ID"); got != seen {
				t.Fatalf("response header = %q, want %q", got, seen)
			}
		})
	}
}
