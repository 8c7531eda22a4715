package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeStudio answers /health and accepts only the given bearer key.
func fakeStudio(t *testing.T, validKey string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+validKey {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]string{}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatusServerDown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HVR_API_KEY", "hvr_testapikey1234567890")
	t.Setenv("HVR_SERVER_URL", "http://127.0.0.1:1")

	if err := runStatus(); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestStatusShortAPIKey(t *testing.T) {
	srv := fakeStudio(t, "hvr_valid")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HVR_API_KEY", "hvr_ab")
	t.Setenv("HVR_SERVER_URL", srv.URL)

	if err := runStatus(); err != nil {
		t.Fatalf("status with short key: %v", err)
	}
}

func TestStatusNoAPIKey(t *testing.T) {
	srv := fakeStudio(t, "hvr_valid")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HVR_API_KEY", "")
	t.Setenv("HVR_SERVER_URL", srv.URL)

	if err := runStatus(); err != nil {
		t.Fatalf("status with no key: %v", err)
	}
}

func TestStatusWithServer(t *testing.T) {
	srv := fakeStudio(t, "hvr_validkey1234567890abc")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HVR_API_KEY", "hvr_validkey1234567890abc")
	t.Setenv("HVR_SERVER_URL", srv.URL)

	if err := runStatus(); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestStatusWithInvalidKey(t *testing.T) {
	srv := fakeStudio(t, "hvr_other")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HVR_API_KEY", "hvr_badkey1234567890abcde")
	t.Setenv("HVR_SERVER_URL", srv.URL)

	if err := runStatus(); err != nil {
		t.Fatalf("status: %v", err)
	}
}
