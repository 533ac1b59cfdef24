package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/crypto"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/models"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient
	signer crypto.Signer

	mu    sync.RWMutex
	token string

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPRemoteAdapter builds the HTTP [RemoteAdapter]. The base URL may omit
// the scheme, http is assumed.
func NewHTTPRemoteAdapter(cfg config.ClientAdapter, log *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	a := &httpRemoteAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		signer: crypto.NewSigner(cfg.HashKey),
		now:    time.Now,
		logger: log,
	}
	a.SetToken(cfg.AccessToken)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteAdapter) Schema(ctx context.Context, layerID string) (models.SchemaInfo, error) {
	var info models.SchemaInfo

	req, err := h.authedRequest(ctx)
	if err != nil {
		return info, err
	}
	resp, err := req.SetResult(&info).Get(layerPath(layerID, "schema"))
	if err != nil {
		return info, fmt.Errorf("%w: schema request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return info, err
	}
	return info, nil
}

func (h *httpRemoteAdapter) VersioningState(ctx context.Context, layerID string) (models.VersioningState, error) {
	var state models.VersioningState

	req, err := h.authedRequest(ctx)
	if err != nil {
		return state, err
	}
	resp, err := req.SetResult(&state).Get(layerPath(layerID, "versioning-state"))
	if err != nil {
		return state, fmt.Errorf("%w: versioning state request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return state, err
	}
	return state, nil
}

// Snapshot probes the schema first to type the GeoJSON properties, then
// checks that the snapshot was produced under the same fingerprint.
func (h *httpRemoteAdapter) Snapshot(ctx context.Context, layerID string) (models.Snapshot, error) {
	info, err := h.Schema(ctx, layerID)
	if err != nil {
		return models.Snapshot{}, err
	}
	versioning, err := h.VersioningState(ctx, layerID)
	if err != nil {
		return models.Snapshot{}, err
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	resp, err := req.SetHeader("Accept", models.ContentTypeGeoJSON).Get(layerPath(layerID, "snapshot"))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: snapshot request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Snapshot{}, err
	}

	if fp := resp.Header().Get(models.HeaderSchemaFingerprint); fp != info.Fingerprint {
		return models.Snapshot{}, fmt.Errorf("%w: probe %s, snapshot %s", ErrSchemaChangedMidway, info.Fingerprint, fp)
	}
	version, err := headerInt(resp, models.HeaderLayerVersion)
	if err != nil {
		return models.Snapshot{}, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(resp.Body())
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: snapshot geojson: %w", ErrMalformedResponse, err)
	}

	features := make([]models.FeatureRecord, 0, len(fc.Features))
	for _, gf := range fc.Features {
		f, err := models.FeatureFromGeoJSON(gf, info.Schema)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		features = append(features, f)
	}

	return models.Snapshot{
		LayerID:     layerID,
		Version:     version,
		Fingerprint: info.Fingerprint,
		Schema:      info.Schema,
		Versioning:  versioning,
		Features:    features,
	}, nil
}

func (h *httpRemoteAdapter) FetchDeltas(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error) {
	log := logger.FromContext(ctx)

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.DeltaPage{}, err
	}
	resp, err := req.
		SetHeader("Accept", models.ContentTypeDelta).
		SetQueryParam("since", strconv.FormatInt(since, 10)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get(layerPath(layerID, "deltas"))
	if err != nil {
		return models.DeltaPage{}, fmt.Errorf("%w: fetch deltas request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeltaPage{}, err
	}

	page := models.DeltaPage{
		Since:       since,
		Fingerprint: resp.Header().Get(models.HeaderSchemaFingerprint),
		HasMore:     resp.Header().Get(models.HeaderHasMore) == "true",
	}
	if page.ToVersion, err = headerInt(resp, models.HeaderLayerVersion); err != nil {
		return models.DeltaPage{}, err
	}

	if page.Deltas, err = codec.DecodeWire(resp.Body()); err != nil {
		log.Err(err).Str("func", "*httpRemoteAdapter.FetchDeltas").
			Str("layer_id", layerID).
			Int64("since", since).
			Msg("failed to decode delta page")
		return models.DeltaPage{}, err
	}
	return page, nil
}

func (h *httpRemoteAdapter) UploadDeltas(ctx context.Context, layerID string, base int64, sourceID string, records []models.DeltaRecord) (models.UploadResult, error) {
	body, err := codec.EncodeWire(records)
	if err != nil {
		// not a transport failure, the batch itself cannot be sent
		return models.UploadResult{}, fmt.Errorf("encode upload batch: %w", err)
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UploadResult{}, err
	}
	req.SetHeader("Content-Type", models.ContentTypeDelta).
		SetHeader(models.HeaderSourceID, sourceID).
		SetQueryParam("base", strconv.FormatInt(base, 10)).
		SetBody(body)
	if sig := h.signer.Sign(body); sig != "" {
		req.SetHeader(models.HeaderBodyHash, sig)
	}

	var result models.UploadResult
	resp, err := req.SetResult(&result).Post(layerPath(layerID, "deltas"))
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: upload request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResult{}, err
	}
	if len(result.Outcomes) != len(records) {
		return models.UploadResult{}, fmt.Errorf("%w: %d outcomes for %d records",
			ErrMalformedResponse, len(result.Outcomes), len(records))
	}
	return result, nil
}

// authedRequest refuses to build a request with a token that has already
// expired: the server would only answer 401.
func (h *httpRemoteAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)

	token := h.Token()
	if token == "" {
		return req, nil
	}
	expired, err := utils.TokenExpired(token, h.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if expired {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrTokenExpired)
	}
	return req.SetAuthToken(token), nil
}

func layerPath(layerID, resource string) string {
	return "/api/layers/" + url.PathEscape(layerID) + "/" + resource
}

func headerInt(resp *resty.Response, name string) (int64, error) {
	raw := resp.Header().Get(name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: header %s=%q", ErrMalformedResponse, name, raw)
	}
	return v, nil
}

// IsTransient reports whether err may go away on retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrServerUnavailable)
}
