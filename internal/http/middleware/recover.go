package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recover garante resposta sanitizada em caso de panic no handler.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic recuperado")
				writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
