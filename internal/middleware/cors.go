package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross-origin reads from every origin.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})
	return c.Handler
}
