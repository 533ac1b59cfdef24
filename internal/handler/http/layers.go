package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/models"
)

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	info, err := h.services.DeltaService.Schema(r.Context(), chi.URLParam(r, "layerID"))
	if err != nil {
		writeError(w, r, "*Handler.getSchema", err)
		return
	}
	h.writeJSON(w, r, "*Handler.getSchema", info, http.StatusOK)
}

func (h *Handler) getVersioningState(w http.ResponseWriter, r *http.Request) {
	state, err := h.services.DeltaService.VersioningState(r.Context(), chi.URLParam(r, "layerID"))
	if err != nil {
		writeError(w, r, "*Handler.getVersioningState", err)
		return
	}
	h.writeJSON(w, r, "*Handler.getVersioningState", state, http.StatusOK)
}

// getSnapshot answers with a GeoJSON FeatureCollection. The version and
// fingerprint it was read under travel as headers.
func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.services.DeltaService.Snapshot(r.Context(), chi.URLParam(r, "layerID"))
	if err != nil {
		writeError(w, r, "*Handler.getSnapshot", err)
		return
	}

	body, err := snapshot.FeatureCollection().MarshalJSON()
	if err != nil {
		writeError(w, r, "*Handler.getSnapshot", err)
		return
	}

	w.Header().Set("Content-Type", models.ContentTypeGeoJSON)
	w.Header().Set(models.HeaderLayerVersion, strconv.FormatInt(snapshot.Version, 10))
	w.Header().Set(models.HeaderSchemaFingerprint, snapshot.Fingerprint)
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSnapshot").Msg("failed to write snapshot")
	}
}

// getDeltas serves one change-log page: ?since=<version>&limit=<n>.
func (h *Handler) getDeltas(w http.ResponseWriter, r *http.Request) {
	since, err := queryInt(r, "since", true)
	if err != nil {
		writeError(w, r, "*Handler.getDeltas", err)
		return
	}
	limit, err := queryInt(r, "limit", false)
	if err != nil {
		writeError(w, r, "*Handler.getDeltas", err)
		return
	}

	page, err := h.services.DeltaService.Changes(r.Context(), chi.URLParam(r, "layerID"), since, int(limit))
	if err != nil {
		writeError(w, r, "*Handler.getDeltas", err)
		return
	}

	body, err := codec.EncodeWire(page.Deltas)
	if err != nil {
		writeError(w, r, "*Handler.getDeltas", err)
		return
	}

	w.Header().Set("Content-Type", models.ContentTypeDelta)
	w.Header().Set(models.HeaderLayerVersion, strconv.FormatInt(page.ToVersion, 10))
	w.Header().Set(models.HeaderHasMore, strconv.FormatBool(page.HasMore))
	w.Header().Set(models.HeaderSchemaFingerprint, page.Fingerprint)
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getDeltas").Msg("failed to write delta page")
	}
}

// postDeltas accepts a delta batch created on top of ?base=<version> by the
// replica named in X-Source-ID.
func (h *Handler) postDeltas(w http.ResponseWriter, r *http.Request) {
	base, err := queryInt(r, "base", true)
	if err != nil {
		writeError(w, r, "*Handler.postDeltas", err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, "*Handler.postDeltas", fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}
	records, err := codec.DecodeWire(body)
	if err != nil {
		writeError(w, r, "*Handler.postDeltas", err)
		return
	}

	result, err := h.services.DeltaService.Upload(r.Context(), chi.URLParam(r, "layerID"), base, r.Header.Get(models.HeaderSourceID), records)
	if err != nil {
		writeError(w, r, "*Handler.postDeltas", err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "*Handler.postDeltas").
		Int("accepted", len(result.Accepted())).
		Int("rejected", len(result.Rejected())).
		Int64("version", result.Version).
		Msg("upload processed")

	h.writeJSON(w, r, "*Handler.postDeltas", result, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, fn string, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("failed to write response")
	}
}

// queryInt parses an integer query parameter. A missing optional parameter
// is zero.
func queryInt(r *http.Request, name string, required bool) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s", ErrMissingQueryParam, name)
		}
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return v, nil
}
