// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/crypto"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/service"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/models"
)

const testToken = "token-1"

type serverEnv struct {
	router  http.Handler
	deltas  *MockDeltaService
	appInfo *MockAppInfoService
}

// newServerEnv routes through Init with a token that always authenticates.
func newServerEnv(t *testing.T, hashKey string) serverEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	authSvc := NewMockAuthService(ctrl)
	authSvc.EXPECT().ParseToken(gomock.Any(), testToken).Return("field-crew-7", nil).AnyTimes()

	env := serverEnv{
		deltas:  NewMockDeltaService(ctrl),
		appInfo: NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{
		AuthService:    authSvc,
		DeltaService:   env.deltas,
		AppInfoService: env.appInfo,
	}, hashKey, logger.Nop())
	env.router = h.Init()
	return env
}

func (e serverEnv) do(method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

var roadsSchema = models.Schema{
	GeometryType: "LineString",
	Columns: []models.Column{
		{Name: "name", Type: models.KindString},
		{Name: "lanes", Type: models.KindInt},
	},
}

// ── Version ──

func TestGetServerVersion(t *testing.T) {
	env := newServerEnv(t, "")
	env.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.4.0")

	// no Authorization needed
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "v1.4.0", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
}

// ── Routing ──

func TestServerRoutes_RequireAuth(t *testing.T) {
	env := newServerEnv(t, "")

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/layers/roads/schema", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServerRoutes_UnsupportedMethod(t *testing.T) {
	env := newServerEnv(t, "")

	rr := env.do(http.MethodDelete, "/api/layers/roads/deltas", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ── Schema and versioning state ──

func TestGetSchema(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		env := newServerEnv(t, "")
		env.deltas.EXPECT().Schema(gomock.Any(), "roads").
			Return(models.SchemaInfo{LayerID: "roads", Schema: roadsSchema, Fingerprint: "fp-1"}, nil)

		rr := env.do(http.MethodGet, "/api/layers/roads/schema", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.SchemaInfo
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "fp-1", got.Fingerprint)
		assert.Equal(t, roadsSchema, got.Schema)
	})

	t.Run("unknown layer", func(t *testing.T) {
		env := newServerEnv(t, "")
		env.deltas.EXPECT().Schema(gomock.Any(), "rivers").Return(models.SchemaInfo{}, store.ErrLayerNotFound)

		rr := env.do(http.MethodGet, "/api/layers/rivers/schema", nil, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "layer not found", decodeErrorBody(t, rr.Body).Error)
	})
}

func TestGetVersioningState(t *testing.T) {
	env := newServerEnv(t, "")
	env.deltas.EXPECT().VersioningState(gomock.Any(), "roads").Return(models.VersioningState{Epoch: 3, Enabled: true}, nil)

	rr := env.do(http.MethodGet, "/api/layers/roads/versioning-state", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"epoch":3,"enabled":true}`, rr.Body.String())
}

// ── Snapshot ──

func TestGetSnapshot(t *testing.T) {
	env := newServerEnv(t, "")
	env.deltas.EXPECT().Snapshot(gomock.Any(), "roads").Return(models.Snapshot{
		LayerID:     "roads",
		Version:     42,
		Fingerprint: "fp-1",
		Schema:      roadsSchema,
		Features: []models.FeatureRecord{{
			ID:         "0b8f0f4e-5b1c-4b0a-9a53-5c1a0a4f1d11",
			Geometry:   orb.LineString{{0, 0}, {1, 1}},
			Attributes: map[string]models.Value{"name": models.StringValue("Main St"), "lanes": models.IntValue(2)},
		}},
	}, nil)

	rr := env.do(http.MethodGet, "/api/layers/roads/snapshot", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.ContentTypeGeoJSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, "42", rr.Header().Get(models.HeaderLayerVersion))
	assert.Equal(t, "fp-1", rr.Header().Get(models.HeaderSchemaFingerprint))

	fc, err := geojson.UnmarshalFeatureCollection(rr.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f, err := models.FeatureFromGeoJSON(fc.Features[0], roadsSchema)
	require.NoError(t, err)
	assert.Equal(t, "Main St", f.Attributes["name"].Str)
}

// ── Fetch deltas ──

func TestGetDeltas(t *testing.T) {
	page := models.DeltaPage{
		Since:       10,
		ToVersion:   12,
		HasMore:     true,
		Fingerprint: "fp-1",
		Deltas: []models.DeltaRecord{
			{Seq: 11, Op: models.OperationUpdate, FeatureID: "f-1", Values: map[string]models.Value{"lanes": models.IntValue(4)}, Origin: "replica-b"},
			{Seq: 12, Op: models.OperationDelete, FeatureID: "f-2", Origin: "replica-b"},
		},
	}

	t.Run("page with headers", func(t *testing.T) {
		env := newServerEnv(t, "")
		env.deltas.EXPECT().Changes(gomock.Any(), "roads", int64(10), 2).Return(page, nil)

		// the gzip layer must not touch the delta body
		rr := env.do(http.MethodGet, "/api/layers/roads/deltas?since=10&limit=2", nil, map[string]string{"Accept-Encoding": "gzip"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.ContentTypeDelta, rr.Header().Get("Content-Type"))
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "12", rr.Header().Get(models.HeaderLayerVersion))
		assert.Equal(t, "true", rr.Header().Get(models.HeaderHasMore))
		assert.Equal(t, "fp-1", rr.Header().Get(models.HeaderSchemaFingerprint))

		got, err := codec.DecodeWire(rr.Body.Bytes())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "f-1", got[0].FeatureID)
		assert.Equal(t, models.OperationDelete, got[1].Op)
	})

	t.Run("limit optional", func(t *testing.T) {
		env := newServerEnv(t, "")
		env.deltas.EXPECT().Changes(gomock.Any(), "roads", int64(0), 0).Return(models.DeltaPage{}, nil)

		rr := env.do(http.MethodGet, "/api/layers/roads/deltas?since=0", nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "false", rr.Header().Get(models.HeaderHasMore))
	})

	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{name: "since missing", target: "/api/layers/roads/deltas", wantStatus: http.StatusBadRequest},
		{name: "since not a number", target: "/api/layers/roads/deltas?since=ten", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", target: "/api/layers/roads/deltas?since=1&limit=x", wantStatus: http.StatusBadRequest},
		{name: "limit out of range", target: "/api/layers/roads/deltas?since=1&limit=9000", serviceErr: service.ErrInvalidPageLimit, wantStatus: http.StatusBadRequest},
		{name: "history truncated", target: "/api/layers/roads/deltas?since=1", serviceErr: store.ErrHistoryTruncated, wantStatus: http.StatusGone},
		{name: "versioning disabled", target: "/api/layers/roads/deltas?since=1", serviceErr: store.ErrVersioningDisabled, wantStatus: http.StatusGone},
		{name: "unknown layer", target: "/api/layers/roads/deltas?since=1", serviceErr: store.ErrLayerNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newServerEnv(t, "")
			if tt.serviceErr != nil {
				env.deltas.EXPECT().Changes(gomock.Any(), "roads", gomock.Any(), gomock.Any()).Return(models.DeltaPage{}, tt.serviceErr)
			}

			rr := env.do(http.MethodGet, tt.target, nil, nil)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ── Upload deltas ──

func TestPostDeltas(t *testing.T) {
	records := []models.DeltaRecord{
		{Seq: 1, Op: models.OperationUpdate, FeatureID: "f-1", Values: map[string]models.Value{"lanes": models.IntValue(3)}, Origin: "replica-a"},
		{Seq: 2, Op: models.OperationDelete, FeatureID: "f-9", Origin: "replica-a"},
	}
	body, err := codec.EncodeWire(records)
	require.NoError(t, err)

	const hashKey = "upload-key"
	sig := crypto.NewSigner(hashKey).Sign(body)

	t.Run("accepted and rejected in request order", func(t *testing.T) {
		env := newServerEnv(t, hashKey)
		env.deltas.EXPECT().Upload(gomock.Any(), "roads", int64(10), "replica-a", gomock.Any()).
			DoAndReturn(func(_ any, _ string, _ int64, _ string, got []models.DeltaRecord) (models.UploadResult, error) {
				require.Len(t, got, 2)
				assert.Equal(t, "f-9", got[1].FeatureID)
				return models.UploadResult{Version: 11, Outcomes: []models.RecordOutcome{
					{Seq: 1, FeatureID: "f-1", Accepted: true},
					{Seq: 2, FeatureID: "f-9", Reason: "feature not found"},
				}}, nil
			})

		rr := env.do(http.MethodPost, "/api/layers/roads/deltas?base=10", bytes.NewReader(body), map[string]string{
			"Content-Type":        models.ContentTypeDelta,
			models.HeaderSourceID: "replica-a",
			models.HeaderBodyHash: sig,
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.UploadResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, int64(11), got.Version)
		assert.Len(t, got.Accepted(), 1)
		assert.Equal(t, "f-9", got.Rejected()[0].FeatureID)
	})

	t.Run("tampered body", func(t *testing.T) {
		env := newServerEnv(t, hashKey)

		rr := env.do(http.MethodPost, "/api/layers/roads/deltas?base=10", bytes.NewReader(body), map[string]string{
			models.HeaderSourceID: "replica-a",
			models.HeaderBodyHash: crypto.NewSigner(hashKey).Sign([]byte("other")),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("garbage batch", func(t *testing.T) {
		env := newServerEnv(t, "")

		rr := env.do(http.MethodPost, "/api/layers/roads/deltas?base=10", strings.NewReader("garbage"), map[string]string{
			models.HeaderSourceID: "replica-a",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("base missing", func(t *testing.T) {
		env := newServerEnv(t, "")

		rr := env.do(http.MethodPost, "/api/layers/roads/deltas", bytes.NewReader(body), nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	serviceErrors := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "source id missing", err: service.ErrMissingSourceID, wantStatus: http.StatusBadRequest},
		{name: "base ahead of layer", err: store.ErrBaseVersionAhead, wantStatus: http.StatusGone},
		{name: "versioning disabled", err: store.ErrVersioningDisabled, wantStatus: http.StatusGone},
	}
	for _, tt := range serviceErrors {
		t.Run(tt.name, func(t *testing.T) {
			env := newServerEnv(t, "")
			env.deltas.EXPECT().Upload(gomock.Any(), "roads", int64(10), gomock.Any(), gomock.Any()).
				Return(models.UploadResult{}, tt.err)

			rr := env.do(http.MethodPost, "/api/layers/roads/deltas?base=10", bytes.NewReader(body), nil)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ── Admin ──

func TestBumpEpoch(t *testing.T) {
	env := newServerEnv(t, "")
	env.deltas.EXPECT().BumpEpoch(gomock.Any(), "roads").Return(models.VersioningState{Epoch: 2, Enabled: true}, nil)

	rr := env.do(http.MethodPost, "/api/admin/layers/roads/epoch", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"epoch":2,"enabled":true}`, rr.Body.String())
}

func TestSetVersioning(t *testing.T) {
	t.Run("disable", func(t *testing.T) {
		env := newServerEnv(t, "")
		env.deltas.EXPECT().SetVersioning(gomock.Any(), "roads", false).Return(models.VersioningState{Epoch: 2}, nil)

		rr := env.do(http.MethodPost, "/api/admin/layers/roads/versioning", strings.NewReader(`{"enabled":false}`), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"epoch":2,"enabled":false}`, rr.Body.String())
	})

	for _, body := range []string{`{}`, `not json`} {
		t.Run("rejects "+body, func(t *testing.T) {
			env := newServerEnv(t, "")

			rr := env.do(http.MethodPost, "/api/admin/layers/roads/versioning", strings.NewReader(body), nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
