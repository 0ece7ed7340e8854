package middleware_test

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/reqlog/internal/core/domain"
	portsmocks "github.com/olusolaa/reqlog/internal/core/ports/mocks"
	"github.com/olusolaa/reqlog/internal/formatter"
	"github.com/olusolaa/reqlog/internal/middleware"
)

func newMiddleware(t *testing.T, maxBody int) (*middleware.Middleware, *portsmocks.Sink) {
	t.Helper()
	s := portsmocks.NewSink(t)
	f, err := formatter.New(formatter.Settings{Level: domain.LevelDebug, MaxBodyLength: maxBody}, s)
	require.NoError(t, err)
	return middleware.New(f), s
}

func TestNewRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/items?page=2&q=a%20b", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Request-Id", "abc")
	r.Header.Add("Accept", "text/plain")
	r.Header.Add("Accept", "application/json")

	got := middleware.NewRequest(r, []byte("{}"))

	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/items?page=2&q=a%20b", got.FullPath)
	assert.Equal(t, []byte("{}"), got.Body)

	want := map[string]string{
		"REQUEST_METHOD":    "POST",
		"PATH_INFO":         "/items",
		"QUERY_STRING":      "page=2&q=a%20b",
		"REMOTE_ADDR":       "192.0.2.1:1234",
		"SERVER_PROTOCOL":   "HTTP/1.1",
		"CONTENT_TYPE":      "application/json",
		"CONTENT_LENGTH":    "2",
		"HTTP_HOST":         "example.com",
		"HTTP_X_REQUEST_ID": "abc",
		"HTTP_ACCEPT":       "text/plain,application/json",
	}
	if diff := cmp.Diff(want, got.Meta); diff != "" {
		t.Errorf("Meta mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_NoHeadersNoBody(t *testing.T) {
	m, s := newMiddleware(t, 100)
	s.On("Emit", mock.Anything, domain.LevelInfo, "GET /x?y=1").Once()
	s.On("Emit", mock.Anything, domain.LevelInfo, "GET /x?y=1 - 200").Once()

	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "ok")
	}))

	r := httptest.NewRequest(http.MethodGet, "/x?y=1", nil)
	r.Host = ""
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	s.AssertNumberOfCalls(t, "Emit", 2)
}

func TestHandler_RequestBody(t *testing.T) {
	m, s := newMiddleware(t, 5)
	s.On("Emit", mock.Anything, domain.LevelInfo, "POST /upload").Once()
	s.On("Emit", mock.Anything, domain.LevelDebug, `{"HTTP_HOST":"example.com"}`).Once()
	s.On("Emit", mock.Anything, domain.LevelDebug, "hello\n...\n").Once()
	s.On("Emit", mock.Anything, domain.LevelInfo, "POST /upload - 204").Once()

	var seen string
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("hello world")))

	assert.Equal(t, "hello world", seen)
}

func TestHandler_FailedJSONResponse(t *testing.T) {
	m, s := newMiddleware(t, 100)
	s.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()
	s.On("EmitForced", mock.Anything, domain.LevelInfo, "GET /missing - 404").Once()

	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"e":1}`)
		w.Header().Set("X-Late", "ignored")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelError, `{"Content-Type":"application/json"}`)
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelError, `{"e":1}`)
}

func TestHandler_LargeResponsePassesThrough(t *testing.T) {
	m, s := newMiddleware(t, 4)
	s.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()

	payload := `{"items":[1,2,3,4,5,6,7,8,9]}`
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, payload[:10])
		_, _ = io.WriteString(w, payload[10:])
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, payload, w.Body.String())
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelDebug, "{\"it\n...\n")
}

func TestHandler_FlushAndUnwrap(t *testing.T) {
	m, s := newMiddleware(t, 100)
	s.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()

	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)
		require.NoError(t, rc.Flush())
		_, _ = io.WriteString(w, "chunk")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.True(t, w.Flushed)
	assert.Equal(t, "chunk", w.Body.String())
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelInfo, "GET /stream - 200")
}

type failingBody struct {
	data []byte
	err  error
}

func (f *failingBody) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func (f *failingBody) Close() error { return nil }

func TestHandler_BodyReadErrorReachesHandler(t *testing.T) {
	m, s := newMiddleware(t, 100)
	s.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()

	s.On("EmitForced", mock.Anything, domain.LevelInfo, "PUT /doc - 400").Once()

	readErr := stderrors.New("connection reset")
	var handlerErr error
	var handlerData []byte
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerData, handlerErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusBadRequest)
	}))

	r := httptest.NewRequest(http.MethodPut, "/doc", nil)
	r.Body = &failingBody{data: []byte("part"), err: readErr}
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.ErrorIs(t, handlerErr, readErr)
	assert.Equal(t, "part", string(handlerData))
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelDebug, "part")
}

func TestHandler_UsesRequestContext(t *testing.T) {
	m, s := newMiddleware(t, 100)
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	s.On("Emit", ctx, mock.Anything, mock.Anything).Maybe()
	s.On("EmitForced", ctx, domain.LevelInfo, "DELETE /a - 500").Once()

	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/a", nil).WithContext(ctx))
}

func TestHandler_Hijack(t *testing.T) {
	m, s := newMiddleware(t, 100)
	s.On("Emit", mock.Anything, domain.LevelInfo, "GET /ws").Once()
	s.On("Emit", mock.Anything, domain.LevelInfo, "GET /ws - 101").Once()
	s.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()

	done := make(chan struct{})
	logged := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !assert.True(t, ok) {
			return
		}
		conn, rw, err := hj.Hijack()
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		_, _ = rw.WriteString("HTTP/1.1 204 No Content\r\nConnection: close\r\n\r\n")
		_ = rw.Flush()
	}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		logged.ServeHTTP(w, r)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return")
	}
	s.AssertCalled(t, "Emit", mock.Anything, domain.LevelInfo, "GET /ws - 101")
}
