package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-geo-sync/internal/app"
	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/service"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusTable is matched in order so that wrapped errors hit their most
// specific entry first.
var errorStatusTable = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrInvalidPageLimit, errorResponse{http.StatusBadRequest, app.MsgInvalidPageLimit}},
	{service.ErrInvalidVersion, errorResponse{http.StatusBadRequest, app.MsgInvalidSinceVersion}},
	{service.ErrMissingSourceID, errorResponse{http.StatusBadRequest, app.MsgMissingSourceID}},
	{service.ErrNoDeltasProvided, errorResponse{http.StatusBadRequest, app.MsgNoDeltasProvided}},
	{ErrMissingQueryParam, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{ErrInvalidQueryParam, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{codec.ErrFormat, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{ErrIntegrityCheckFailed, errorResponse{http.StatusBadRequest, app.MsgIntegrityCheckFailed}},
	{ErrInvalidRequestBody, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{ErrUnknownOperation, errorResponse{http.StatusBadRequest, app.MsgUnknownOperation}},

	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrEmptyAuthorizationHeader, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{utils.ErrInvalidAuthHeader, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{store.ErrLayerNotFound, errorResponse{http.StatusNotFound, app.MsgLayerNotFound}},
	{store.ErrHistoryTruncated, errorResponse{http.StatusGone, app.MsgHistoryTruncated}},
	{store.ErrVersioningDisabled, errorResponse{http.StatusGone, app.MsgHistoryTruncated}},
	{store.ErrBaseVersionAhead, errorResponse{http.StatusGone, app.MsgBaseVersionAhead}},
	{store.ErrInvalidDelta, errorResponse{http.StatusUnprocessableEntity, app.MsgInvalidDataProvided}},

	// client control API
	{service.ErrLayerNotAttached, errorResponse{http.StatusNotFound, app.MsgLayerNotAttached}},
	{service.ErrInvalidEdit, errorResponse{http.StatusUnprocessableEntity, app.MsgInvalidFeature}},
	{service.ErrSessionCancelled, errorResponse{http.StatusConflict, app.MsgSyncFailed}},
	{store.ErrReplicaNotInitialized, errorResponse{http.StatusConflict, app.MsgLayerNotInitialized}},
	{store.ErrFeatureExists, errorResponse{http.StatusConflict, app.MsgInvalidFeature}},
	{store.ErrFeatureNotFound, errorResponse{http.StatusNotFound, app.MsgInvalidFeature}},
}

// syncErrorTable maps typed sync failures of the control API. Remote-side
// failures are reported as 502: the host request itself was fine.
var syncErrorTable = map[syncerr.Kind]errorResponse{
	syncerr.KindLayerBusy:          {http.StatusLocked, app.MsgLayerBusy},
	syncerr.KindNetwork:            {http.StatusBadGateway, app.MsgRemoteUnavailable},
	syncerr.KindAuth:               {http.StatusBadGateway, app.MsgRemoteAuthFailed},
	syncerr.KindFormat:             {http.StatusBadGateway, app.MsgSyncFailed},
	syncerr.KindStructuralConflict: {http.StatusConflict, app.MsgStructuralConflict},
	syncerr.KindDataConflict:       {http.StatusConflict, app.MsgDataConflict},
	syncerr.KindContainerMissing:   {http.StatusInternalServerError, app.MsgContainerUnavailable},
}

func responseFromError(err error) errorResponse {
	if serr, ok := syncerr.As(err); ok {
		if resp, ok := syncErrorTable[serr.Kind]; ok {
			return resp
		}
	}
	for _, entry := range errorStatusTable {
		if errors.Is(err, entry.target) {
			return entry.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err and answers with its mapped status. Typed sync
// failures carry their kind, stage and feature ids.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	resp := responseFromError(err)

	body := utils.ErrorBody{Error: resp.message}
	if serr, ok := syncerr.As(err); ok {
		body.Kind = serr.Kind.String()
		body.Stage = serr.Stage.String()
		body.FeatureIDs = serr.FeatureIDs
		if serr.Reason != "" {
			body.Error = resp.message + ": " + serr.Reason
		}
	}

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", resp.status).Msg(resp.message)
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", resp.status).Msg(resp.message)
	}

	_, _ = utils.WriteJSON(w, body, resp.status)
}
