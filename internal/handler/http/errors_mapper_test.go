package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/service"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid page limit", service.ErrInvalidPageLimit, http.StatusBadRequest},
		{"wrapped missing param", fmt.Errorf("%w: since", ErrMissingQueryParam), http.StatusBadRequest},
		{"codec format", &codec.FormatError{Reason: "bad magic"}, http.StatusBadRequest},
		{"integrity", ErrIntegrityCheckFailed, http.StatusBadRequest},
		{"unknown op", ErrUnknownOperation, http.StatusBadRequest},
		{"expired token", service.ErrTokenIsExpired, http.StatusUnauthorized},
		{"bad auth header", utils.ErrInvalidAuthHeader, http.StatusUnauthorized},
		{"layer not found", store.ErrLayerNotFound, http.StatusNotFound},
		{"history truncated", store.ErrHistoryTruncated, http.StatusGone},
		{"base ahead", fmt.Errorf("upload: %w", store.ErrBaseVersionAhead), http.StatusGone},
		{"invalid delta", store.ErrInvalidDelta, http.StatusUnprocessableEntity},
		{"not attached", service.ErrLayerNotAttached, http.StatusNotFound},
		{"invalid edit", fmt.Errorf("%w: geometry", service.ErrInvalidEdit), http.StatusUnprocessableEntity},
		{"no snapshot yet", store.ErrReplicaNotInitialized, http.StatusConflict},
		{"busy", syncerr.LayerBusy("roads", "edit session open"), http.StatusLocked},
		{"network", syncerr.Network(models.StageUpload, errors.New("reset by peer")), http.StatusBadGateway},
		{"remote auth", syncerr.Auth(models.StageFetch, "token expired", nil), http.StatusBadGateway},
		{"structural", syncerr.Structural(models.StageReconcile, "epoch jumped"), http.StatusConflict},
		{"data", syncerr.Data(models.StageUpload, "rejected", []string{"f-1"}), http.StatusConflict},
		{"container", syncerr.ContainerMissing("roads", nil), http.StatusInternalServerError},
		{"unexpected", context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestResponseFromError_SyncKindBeatsCause(t *testing.T) {
	// a structural failure caused by a 410 from the remote is still a
	// conflict for the host, not a Gone
	err := syncerr.New(syncerr.KindStructuralConflict, models.StageFetch, "history truncated", store.ErrHistoryTruncated)

	assert.Equal(t, http.StatusConflict, statusFromError(err))
}
