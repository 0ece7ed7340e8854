// Package middleware attaches the request formatter to net/http.
package middleware

import (
	"net/http"

	"github.com/olusolaa/reqlog/internal/formatter"
)

type Middleware struct {
	formatter *formatter.Formatter
	// captureLimit is one past the truncation length, enough to tell
	// whether a body needs the truncation marker.
	captureLimit int
}

func New(f *formatter.Formatter) *Middleware {
	return &Middleware{
		formatter:    f,
		captureLimit: f.Settings().MaxBodyLength + 1,
	}
}

// Handler logs the request before next runs and the response after it
// returns. Formatting errors are raised as panics so the server's recovery
// handling sees them.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body := captureBody(r, int64(m.captureLimit))
		req := NewRequest(r, body)
		if err := m.formatter.OnRequest(ctx, req); err != nil {
			panic(err)
		}

		rec := newRecorder(w, m.captureLimit)
		next.ServeHTTP(rec, r)

		if _, err := m.formatter.OnResponse(ctx, req, rec.response()); err != nil {
			panic(err)
		}
	})
}
