package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS admits the configured dashboard origins. The browser client only sends
// JSON and multipart bodies with a bearer token, so the allowed surface is
// kept to exactly that.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		// X-Request-ID is stamped by the logging middleware; Content-Length
		// lets the client show document download sizes.
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:           3600,
		AllowCredentials: false,
	})

	return handler.Handler
}
