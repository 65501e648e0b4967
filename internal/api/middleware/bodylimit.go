package middleware

import "net/http"

// MaxBodySize limits the request body to the given number of bytes.
// Used on the JSON export routes; the upload route applies its own
// http.MaxBytesReader with the configured upload limit.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
