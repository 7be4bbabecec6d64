package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	appmw "github.com/eugenecsa/taskbook/internal/middleware"
)

func TestRequestLogger_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(appmw.RequestLogger(logger))
	r.Get("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var line struct {
		Msg    string `json:"msg"`
		Method string `json:"method"`
		Path   string `json:"path"`
		Status int    `json:"status"`
		Size   int    `json:"size"`
		ReqID  string `json:"req_id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not one JSON line: %v\n%s", err, buf.String())
	}

	if line.Msg != "http_request" {
		t.Errorf("expected msg http_request, got %q", line.Msg)
	}
	if line.Method != "GET" || line.Path != "/tasks" {
		t.Errorf("wrong method/path: %q %q", line.Method, line.Path)
	}
	if line.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", line.Status)
	}
	if line.Size != len("[]") {
		t.Errorf("expected size %d, got %d", len("[]"), line.Size)
	}
	if line.ReqID == "" {
		t.Errorf("expected non-empty req_id, got line: %s", buf.String())
	}
}
