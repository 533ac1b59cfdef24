package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
)

// auth enforces "Authorization: Bearer <token>" on the delta API. The
// token subject is stored in the request context and added to the request
// logger as principal.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthService.ParseToken(ctx, token)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		log := logger.FromRequest(r).GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("principal", principal)
		})
		ctx = log.WithContext(utils.WithPrincipal(ctx, principal))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
