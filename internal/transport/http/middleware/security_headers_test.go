package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func secureHeadersResponse(t *testing.T, isProd bool) http.Header {
	t.Helper()
	handler := SecureHeaders(isProd)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	return rec.Header()
}

func TestSecureHeadersBaseline(t *testing.T) {
	headers := secureHeadersResponse(t, false)

	if got := headers.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := headers.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
	if got := headers.Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("HSTS must be off outside production, got %q", got)
	}
}

func TestSecureHeadersDashboardCSP(t *testing.T) {
	csp := secureHeadersResponse(t, false).Get("Content-Security-Policy")

	for _, directive := range []string{
		"default-src 'self'",
		"connect-src 'self'",
		"img-src 'self' data: blob:",
		"script-src 'self'",
		"frame-ancestors 'none'",
	} {
		if !strings.Contains(csp, directive) {
			t.Fatalf("CSP missing %q: %s", directive, csp)
		}
	}
	if strings.Contains(csp, "unsafe-eval") {
		t.Fatalf("CSP must not allow eval: %s", csp)
	}
}

func TestSecureHeadersHSTSInProduction(t *testing.T) {
	headers := secureHeadersResponse(t, true)
	if got := headers.Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=") {
		t.Fatalf("expected HSTS in production, got %q", got)
	}
}
