package accesslog

import (
	"log/slog"
	"net/http"
)

// placeholder stands in for any field that cannot be derived from the
// request. Extraction never fails; a missing value must not take the
// response down with it.
const placeholder = "-"

// FieldNames maps each emitted value to its record key. Override via
// StructuredLogger.WithFieldNames when downstream tooling expects
// different names.
type FieldNames struct {
	Method     string
	Path       string
	Status     string
	DurationMS string
	Bytes      string
	Proto      string
	Host       string
	Referer    string
	RemoteAddr string
	UserAgent  string
	RequestID  string
	Query      string
}

// DefaultFieldNames returns the standard key set.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Method:     "method",
		Path:       "path",
		Status:     "status",
		DurationMS: "duration_ms",
		Bytes:      "bytes",
		Proto:      "proto",
		Host:       "host",
		Referer:    "referer",
		RemoteAddr: "remote_addr",
		UserAgent:  "user_agent",
		RequestID:  "request_id",
		Query:      "query",
	}
}

// RequestAttrs derives the request-describing attrs. Pure and total: any
// well-formed *http.Request yields a full attr set, with "-" in place of
// anything the request doesn't carry.
func RequestAttrs(names FieldNames, r *http.Request) []slog.Attr {
	path, query := placeholder, placeholder
	if r.URL != nil {
		path = orPlaceholder(r.URL.Path)
		query = orPlaceholder(r.URL.RawQuery)
	}

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = r.Header.Get(RequestIDHeader)
	}

	return []slog.Attr{
		slog.String(names.Method, orPlaceholder(r.Method)),
		slog.String(names.Path, path),
		slog.String(names.Proto, orPlaceholder(r.Proto)),
		slog.String(names.Host, orPlaceholder(r.Host)),
		slog.String(names.Referer, orPlaceholder(r.Referer())),
		slog.String(names.RemoteAddr, orPlaceholder(r.RemoteAddr)),
		slog.String(names.UserAgent, orPlaceholder(r.UserAgent())),
		slog.String(names.RequestID, orPlaceholder(requestID)),
		slog.String(names.Query, query),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
