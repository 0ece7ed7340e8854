package app

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/reqlog/internal/core/ports"
	"github.com/olusolaa/reqlog/internal/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewRouter mounts the demo routes behind the request logger. Recoverer sits
// outside the logger so formatting panics become 500 responses.
//
//	GET  /healthz       plain text, never logged in detail
//	POST /echo          echoes a JSON body
//	GET  /status/{code} JSON response with the given status
func NewRouter(mw *middleware.Middleware, logger ports.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(mw.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Warnf(r.Context(), "Reading echo body: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
			return
		}
		if !json.Valid(body) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body is not valid JSON"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	r.Get("/status/{code}", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(chi.URLParam(r, "code"))
		if err != nil || code < 200 || code > 599 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be between 200 and 599"})
			return
		}
		writeJSON(w, code, map[string]any{"status": code, "text": http.StatusText(code)})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
