package middleware

import (
	"net/http"

	"southern-cross/frms/internal/db/repositories"
)

// AuthMiddleware requires a valid, active API key on every request.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}

			if !keyRes.Status {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
