package accesslog

import "net/http"

// ResponseCapture wraps http.ResponseWriter to capture the status code and
// bytes written, since http.ResponseWriter doesn't expose the status after
// WriteHeader(). The wrapped writer is handed downstream in place of the
// original; the response itself passes through untouched.
type ResponseCapture struct {
	http.ResponseWriter
	StatusCode  int
	Written     int64
	wroteHeader bool
}

// NewResponseCapture wraps a ResponseWriter. The status defaults to 200,
// matching what net/http sends when a handler writes without calling
// WriteHeader.
func NewResponseCapture(w http.ResponseWriter) *ResponseCapture {
	return &ResponseCapture{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code then delegates. Only the first call
// counts; net/http ignores (and warns about) the rest.
func (rc *ResponseCapture) WriteHeader(code int) {
	if rc.wroteHeader {
		return
	}
	rc.StatusCode = code
	rc.wroteHeader = true
	rc.ResponseWriter.WriteHeader(code)
}

// Write captures bytes written then delegates.
func (rc *ResponseCapture) Write(b []byte) (int, error) {
	if !rc.wroteHeader {
		rc.WriteHeader(http.StatusOK)
	}
	n, err := rc.ResponseWriter.Write(b)
	rc.Written += int64(n)
	return n, err
}

// Committed reports whether a status line has been sent to the client.
func (rc *ResponseCapture) Committed() bool {
	return rc.wroteHeader
}
