package middleware

import (
	"net/http"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
)

// MaxRequestSize caps request bodies. Multipart uploads get their own, larger limit.
func MaxRequestSize(limit, multipartLimit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			maxBytes := limit
			if extractContentType(r.Header.Get("Content-Type")) == contentTypeMultipart {
				maxBytes = multipartLimit
			}

			if r.ContentLength > maxBytes {
				_ = httputil.WriteError(w, apperrors.TooLarge(maxBytes))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
