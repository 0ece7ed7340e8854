// Package formatter turns request and response views into log lines and
// dispatches them to a ports.Sink.
//
// For a request it writes the method and full path at info, then the header
// metadata and the truncated body at the configured detail level. For a
// response it writes "<METHOD> <path> - <status>" at info and, for JSON
// responses only, the headers and truncated body. Failed responses
// (status 400-599) are written with the error colour and their detail at
// error level regardless of the configured level.
package formatter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/core/ports"
	"github.com/olusolaa/reqlog/internal/errors"
)

const (
	DefaultHeaderPrefix = "HTTP_"
	// TruncationMarker follows a body cut at the maximum length.
	TruncationMarker = "\n...\n"
	jsonContentType  = "application/json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Settings struct {
	// Level is used for header and body detail lines.
	Level         domain.Level
	MaxBodyLength int
	// HeaderPrefix selects the request metadata entries that are headers.
	HeaderPrefix string
}

type Formatter struct {
	settings Settings
	sink     ports.Sink
}

func New(settings Settings, sink ports.Sink) (*Formatter, error) {
	if sink == nil {
		return nil, errors.New(errors.CodeInternal, "formatter requires a sink")
	}
	if !settings.Level.Valid() {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("invalid detail level %d", int(settings.Level)))
	}
	if settings.MaxBodyLength <= 0 {
		return nil, errors.New(errors.CodeConfigValidation,
			fmt.Sprintf("max body length must be positive, got %d", settings.MaxBodyLength))
	}
	if settings.HeaderPrefix == "" {
		settings.HeaderPrefix = DefaultHeaderPrefix
	}
	return &Formatter{settings: settings, sink: sink}, nil
}

func (f *Formatter) Settings() Settings {
	return f.settings
}

func (f *Formatter) OnRequest(ctx context.Context, req domain.Request) error {
	f.sink.Emit(ctx, domain.LevelInfo, methodPath(req))

	if headers := f.requestHeaders(req); len(headers) > 0 {
		line, err := renderHeaders(headers)
		if err != nil {
			return errors.Wrap(err, errors.CodeFormatError, "rendering request headers")
		}
		f.sink.Emit(ctx, f.settings.Level, line)
	}

	if len(req.Body) > 0 {
		f.sink.Emit(ctx, f.settings.Level, Truncate(req.Body, f.settings.MaxBodyLength))
	}
	return nil
}

// OnResponse returns resp unchanged.
func (f *Formatter) OnResponse(ctx context.Context, req domain.Request, resp domain.Response) (domain.Response, error) {
	line := fmt.Sprintf("%s - %d", methodPath(req), resp.StatusCode)

	if resp.IsFailure() {
		f.sink.EmitForced(ctx, domain.LevelInfo, line)
		return resp, f.responseDetail(ctx, domain.LevelError, resp)
	}

	f.sink.Emit(ctx, domain.LevelInfo, line)
	return resp, f.responseDetail(ctx, f.settings.Level, resp)
}

func (f *Formatter) responseDetail(ctx context.Context, level domain.Level, resp domain.Response) error {
	if !IsJSON(resp.ContentType()) {
		return nil
	}

	line, err := renderHeaders(flattenHeader(resp.Header))
	if err != nil {
		return errors.Wrap(err, errors.CodeFormatError, "rendering response headers")
	}
	f.sink.Emit(ctx, level, line)
	f.sink.Emit(ctx, level, Truncate(resp.Body, f.settings.MaxBodyLength))
	return nil
}

func (f *Formatter) requestHeaders(req domain.Request) map[string]string {
	headers := make(map[string]string)
	for k, v := range req.Meta {
		if strings.HasPrefix(k, f.settings.HeaderPrefix) {
			headers[k] = v
		}
	}
	return headers
}

func methodPath(req domain.Request) string {
	return req.Method + " " + req.FullPath
}

// IsJSON reports whether a content type starts with application/json,
// ignoring case.
func IsJSON(contentType string) bool {
	return len(contentType) >= len(jsonContentType) &&
		strings.EqualFold(contentType[:len(jsonContentType)], jsonContentType)
}

// Truncate cuts msg to n bytes and appends TruncationMarker when it is longer
// than n. It does not respect multi-byte boundaries.
func Truncate(msg []byte, n int) string {
	if len(msg) > n {
		return string(msg[:n]) + TruncationMarker
	}
	return string(msg)
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// renderHeaders writes the mapping as a JSON object with sorted keys.
func renderHeaders(headers map[string]string) (string, error) {
	b, err := json.Marshal(headers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
