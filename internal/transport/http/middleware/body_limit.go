package middleware

import (
	"net/http"
	"strings"
)

// BodyLimit caps request bodies on mutating methods. JSON endpoints get the
// small maxBytes cap; multipart requests are task attachment uploads and get
// the larger uploadBytes cap so the global limit does not reject files the
// attachment handler would accept.
func BodyLimit(maxBytes, uploadBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				limit := maxBytes
				if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
					limit = uploadBytes
				}
				if limit > 0 {
					r.Body = http.MaxBytesReader(w, r.Body, limit)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
