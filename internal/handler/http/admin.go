package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

type versioningRequest struct {
	Enabled *bool `json:"enabled"`
}

// bumpEpoch starts a new versioning epoch. Replicas synced under the old
// epoch rebuild from a snapshot or report a structural conflict.
func (h *Handler) bumpEpoch(w http.ResponseWriter, r *http.Request) {
	layerID := chi.URLParam(r, "layerID")
	state, err := h.services.DeltaService.BumpEpoch(r.Context(), layerID)
	if err != nil {
		writeError(w, r, "*Handler.bumpEpoch", err)
		return
	}

	logger.FromRequest(r).Info().Str("layer_id", layerID).Int64("epoch", state.Epoch).Msg("epoch bumped")
	h.writeJSON(w, r, "*Handler.bumpEpoch", state, http.StatusOK)
}

func (h *Handler) setVersioning(w http.ResponseWriter, r *http.Request) {
	layerID := chi.URLParam(r, "layerID")

	var req versioningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.setVersioning", fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}
	if req.Enabled == nil {
		writeError(w, r, "*Handler.setVersioning", fmt.Errorf("%w: enabled is required", ErrInvalidRequestBody))
		return
	}

	state, err := h.services.DeltaService.SetVersioning(r.Context(), layerID, *req.Enabled)
	if err != nil {
		writeError(w, r, "*Handler.setVersioning", err)
		return
	}

	logger.FromRequest(r).Info().Str("layer_id", layerID).Bool("enabled", state.Enabled).Msg("versioning changed")
	h.writeJSON(w, r, "*Handler.setVersioning", state, http.StatusOK)
}
