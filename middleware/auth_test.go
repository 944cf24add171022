package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestServiceAuthLocalhostPasses(t *testing.T) {
	req := httptest.NewRequest("GET", "/projects", nil)
	req.RemoteAddr = "127.0.0.1:54321"
	rec := httptest.NewRecorder()

	ServiceAuthMiddleware(okHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("localhost request rejected: %d", rec.Code)
	}
}

func TestServiceAuthRemoteRequiresHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/projects", nil)
	req.RemoteAddr = "10.4.2.7:40000"
	rec := httptest.NewRecorder()

	ServiceAuthMiddleware(okHandler)(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for remote caller without header, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/projects", nil)
	req.RemoteAddr = "10.4.2.7:40000"
	req.Header.Set("X-Service-Name", "dashboard-frontend")
	rec = httptest.NewRecorder()

	ServiceAuthMiddleware(okHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("named service rejected: %d", rec.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	handler := CorsMiddleware("https://portal.example.com", http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example.com" {
		t.Errorf("origin header = %q", got)
	}
}
