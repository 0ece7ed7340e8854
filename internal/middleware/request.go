package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/olusolaa/reqlog/internal/core/domain"
)

// NewRequest builds the formatter's view of r. Headers become HTTP_<NAME>
// metadata entries; Content-Type and Content-Length are kept as
// CONTENT_TYPE and CONTENT_LENGTH like the other server entries.
func NewRequest(r *http.Request, body []byte) domain.Request {
	meta := map[string]string{
		"REQUEST_METHOD":  r.Method,
		"PATH_INFO":       r.URL.Path,
		"QUERY_STRING":    r.URL.RawQuery,
		"REMOTE_ADDR":     r.RemoteAddr,
		"SERVER_PROTOCOL": r.Proto,
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		meta["CONTENT_TYPE"] = ct
	}
	if r.ContentLength > 0 {
		meta["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}
	if r.Host != "" {
		meta["HTTP_HOST"] = r.Host
	}
	for name, values := range r.Header {
		switch name {
		case "Content-Type", "Content-Length":
			continue
		}
		meta[metaKey(name)] = strings.Join(values, ",")
	}

	return domain.Request{
		Method:   r.Method,
		FullPath: r.URL.RequestURI(),
		Meta:     meta,
		Body:     body,
	}
}

func metaKey(header string) string {
	return "HTTP_" + strings.ToUpper(strings.ReplaceAll(header, "-", "_"))
}

// captureBody reads at most limit bytes of r.Body and puts them back in
// front of the unread remainder. A read error is replayed to the next
// reader of r.Body after the bytes that were read.
func captureBody(r *http.Request, limit int64) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	orig := r.Body
	buf, err := io.ReadAll(io.LimitReader(orig, limit))

	var rest io.Reader = orig
	if err != nil {
		rest = errReader{err: err}
	}
	r.Body = &replayBody{
		Reader: io.MultiReader(bytes.NewReader(buf), rest),
		Closer: orig,
	}
	return buf
}

type replayBody struct {
	io.Reader
	io.Closer
}

type errReader struct {
	err error
}

func (e errReader) Read([]byte) (int, error) {
	return 0, e.err
}
