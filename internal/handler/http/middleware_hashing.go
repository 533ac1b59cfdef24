package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/models"
)

// maxUploadBytes bounds a single upload body.
const maxUploadBytes = 32 << 20

// verifyBodyHash checks the HashSHA256 header against an HMAC of the raw
// body and restores the body for the next handler.
func (h *Handler) verifyBodyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyBodyHash").Msg("failed to read request body")
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		hash := r.Header.Get(models.HeaderBodyHash)
		if !h.signer.Verify(body, hash) {
			log.Error().Str("func", "*Handler.verifyBodyHash").
				Str("hash from request", hash).
				Int("body size", len(body)).
				Msg("hashes are not equal")
			writeError(w, r, "*Handler.verifyBodyHash", ErrIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
