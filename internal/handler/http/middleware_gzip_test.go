// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-geo-sync/models"
)

func gzipBytes(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	zr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer zr.Close()
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

func TestWithGZip_Responses(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		body           string
		wantGzipped    bool
	}{
		{
			name:           "json compressed when accepted",
			acceptEncoding: "gzip",
			contentType:    "application/json",
			body:           `{"layer_id":"roads"}`,
			wantGzipped:    true,
		},
		{
			name:           "accept-encoding list with quality values",
			acceptEncoding: "deflate, gzip;q=1.0, br",
			contentType:    models.ContentTypeGeoJSON,
			body:           strings.Repeat(`{"type":"Feature"}`, 50),
			wantGzipped:    true,
		},
		{
			name:        "plain when gzip not accepted",
			contentType: "application/json",
			body:        `{"layer_id":"roads"}`,
		},
		{
			name:           "delta batches pass through",
			acceptEncoding: "gzip",
			contentType:    models.ContentTypeDelta,
			body:           "\x00\x01snappy-frame",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/layers/roads/deltas", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, gunzip(t, rr.Body))
				return
			}
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestWithGZip_ImplicitStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("v1.0.0"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "v1.0.0", gunzip(t, rr.Body))
}

func TestWithGZip_RequestBody(t *testing.T) {
	t.Run("gzipped body is decoded", func(t *testing.T) {
		var got string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			got = string(b)
			assert.Empty(t, r.Header.Get("Content-Encoding"))
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/layers/roads/edits", gzipBytes(t, []byte(`{"op":"insert"}`)))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()
		withGZip(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, `{"op":"insert"}`, got)
	})

	t.Run("corrupt gzip is rejected", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodPost, "/api/layers/roads/edits", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()
		withGZip(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, called)
	})
}

func TestWithGZip_PoolReuse(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(r.URL.Query().Get("n")))
	})
	h := withGZip(next)

	for _, n := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/x?n="+n, nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, n, gunzip(t, rr.Body))
	}
}
