package accesslog

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
)

// RequestIDHeader carries the request ID between client, server, and logs.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID generates or propagates a request ID for each request.
// If the client sends X-Request-ID, it's reused. Otherwise a new one is
// generated. The ID is stored in the context and set on the response
// header, and the access logger picks it up as the request_id field.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				b := make([]byte, 16)
				rand.Read(b)
				id = fmt.Sprintf("%x", b)
			}

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			r = r.WithContext(ctx)
			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDFrom retrieves the request ID from context, or "" if none was
// assigned.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
