package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// Cors lets a storefront served from another host call the api with credentials.
// Any origin is accepted and echoed back.
func Cors(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(origin string) bool { return origin != "" }),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-Id"}),
		handlers.AllowCredentials(),
		handlers.OptionStatusCode(http.StatusNoContent),
	)(next)
}
