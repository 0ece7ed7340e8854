package middleware

import (
	"bufio"
	"bytes"
	"net"
	"net/http"

	"github.com/olusolaa/reqlog/internal/core/domain"
)

// recorder passes every call through to the wrapped writer and keeps the
// status, a header snapshot and the first limit bytes of the body.
type recorder struct {
	http.ResponseWriter
	status int
	header http.Header
	body   bytes.Buffer
	limit  int
}

func newRecorder(w http.ResponseWriter, limit int) *recorder {
	return &recorder{ResponseWriter: w, limit: limit}
}

func (r *recorder) WriteHeader(code int) {
	// Informational responses may precede the final one.
	if code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols {
		r.ResponseWriter.WriteHeader(code)
		return
	}
	if r.status == 0 {
		r.status = code
		r.header = r.ResponseWriter.Header().Clone()
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	if room := r.limit - r.body.Len(); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		r.body.Write(p[:room])
	}
	return r.ResponseWriter.Write(p)
}

func (r *recorder) Flush() {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection to the handler. A hijacked exchange that never
// wrote a status is logged as 101.
func (r *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(r.ResponseWriter).Hijack()
	if err != nil {
		return nil, nil, err
	}
	if r.status == 0 {
		r.status = http.StatusSwitchingProtocols
		r.header = r.ResponseWriter.Header().Clone()
	}
	return conn, rw, nil
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *recorder) response() domain.Response {
	status := r.status
	header := r.header
	if status == 0 {
		status = http.StatusOK
		header = r.ResponseWriter.Header().Clone()
	}
	return domain.Response{
		StatusCode: status,
		Header:     header,
		Body:       r.body.Bytes(),
	}
}
