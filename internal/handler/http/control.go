package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb/geojson"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/models"
)

// syncResponse is the body of a finished sync request. Failed sessions are
// reported through the error body instead.
type syncResponse struct {
	models.SyncOutcome
	Decision string `json:"decision"`
}

type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type statusResponse struct {
	LayerID string            `json:"layer_id"`
	Status  models.SyncStatus `json:"status"`
}

// editRequest carries one local edit. The feature is a GeoJSON Feature
// whose id names the edited feature and whose properties hold the changed
// columns.
type editRequest struct {
	Op      string           `json:"op"`
	Feature *geojson.Feature `json:"feature"`
}

func (c *ControlHandler) listLayers(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, r, "*ControlHandler.listLayers", c.client.Orchestrator.Layers(), http.StatusOK)
}

func (c *ControlHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	layerID := chi.URLParam(r, "layerID")
	status, err := c.client.Orchestrator.GetSyncStatus(layerID)
	if err != nil {
		writeError(w, r, "*ControlHandler.getStatus", err)
		return
	}
	c.writeJSON(w, r, "*ControlHandler.getStatus", statusResponse{LayerID: layerID, Status: status}, http.StatusOK)
}

func (c *ControlHandler) attach(w http.ResponseWriter, r *http.Request) {
	replica, err := c.client.Orchestrator.Attach(r.Context(), chi.URLParam(r, "layerID"))
	if err != nil {
		writeError(w, r, "*ControlHandler.attach", err)
		return
	}
	c.writeJSON(w, r, "*ControlHandler.attach", replica, http.StatusOK)
}

// sync runs a session to completion. The session is detached from the
// request context so that a dropped connection does not cancel it; use the
// cancel endpoint for that.
func (c *ControlHandler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	out, err := c.client.Orchestrator.Sync(ctx, chi.URLParam(r, "layerID"))
	if err != nil {
		writeError(w, r, "*ControlHandler.sync", err)
		return
	}
	c.writeJSON(w, r, "*ControlHandler.sync", syncResponse{SyncOutcome: out, Decision: out.Decision.String()}, http.StatusOK)
}

func (c *ControlHandler) cancel(w http.ResponseWriter, r *http.Request) {
	layerID := chi.URLParam(r, "layerID")
	if _, err := c.client.Orchestrator.Replica(layerID); err != nil {
		writeError(w, r, "*ControlHandler.cancel", err)
		return
	}
	cancelled := c.client.Orchestrator.Cancel(layerID)
	c.writeJSON(w, r, "*ControlHandler.cancel", cancelResponse{Cancelled: cancelled}, http.StatusOK)
}

func (c *ControlHandler) reset(w http.ResponseWriter, r *http.Request) {
	if err := c.client.Orchestrator.RequestReset(r.Context(), chi.URLParam(r, "layerID")); err != nil {
		writeError(w, r, "*ControlHandler.reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ControlHandler) detach(w http.ResponseWriter, r *http.Request) {
	if err := c.client.Orchestrator.Detach(r.Context(), chi.URLParam(r, "layerID")); err != nil {
		writeError(w, r, "*ControlHandler.detach", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordEdit captures one local edit and answers with the stored record,
// sequence number included.
func (c *ControlHandler) recordEdit(w http.ResponseWriter, r *http.Request) {
	layerID := chi.URLParam(r, "layerID")

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*ControlHandler.recordEdit", fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}
	op, ok := models.ParseOperationKind(req.Op)
	if !ok {
		writeError(w, r, "*ControlHandler.recordEdit", fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op))
		return
	}
	if req.Feature == nil {
		writeError(w, r, "*ControlHandler.recordEdit", fmt.Errorf("%w: feature is required", ErrInvalidRequestBody))
		return
	}

	replica, err := c.client.Orchestrator.Replica(layerID)
	if err != nil {
		writeError(w, r, "*ControlHandler.recordEdit", err)
		return
	}

	delta, err := models.DeltaFromGeoJSON(op, req.Feature, replica.Schema)
	if err != nil {
		writeError(w, r, "*ControlHandler.recordEdit", fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	stored, err := c.client.Orchestrator.RecordLocalEdit(r.Context(), layerID, delta)
	if err != nil {
		writeError(w, r, "*ControlHandler.recordEdit", err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "*ControlHandler.recordEdit").
		Str("layer_id", layerID).
		Int64("seq", stored.Seq).
		Str("op", stored.Op.String()).
		Msg("local edit recorded")

	c.writeJSON(w, r, "*ControlHandler.recordEdit", stored, http.StatusCreated)
}

func (c *ControlHandler) writeJSON(w http.ResponseWriter, r *http.Request, fn string, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("failed to write response")
	}
}
