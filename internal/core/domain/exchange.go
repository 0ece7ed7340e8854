package domain

import "net/http"

// Request is the view of an inbound request the formatter works on.
type Request struct {
	Method string
	// FullPath is the path including the raw query string.
	FullPath string
	// Meta holds CGI-style request metadata. Request headers appear as
	// HTTP_<NAME> entries next to server entries such as REMOTE_ADDR.
	Meta map[string]string
	Body []byte
}

// Response is the view of a completed response. Body may be a bounded
// prefix of what was actually sent.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r Response) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// IsFailure reports whether the status code is in [400, 599].
func (r Response) IsFailure() bool {
	return r.StatusCode >= 400 && r.StatusCode <= 599
}
