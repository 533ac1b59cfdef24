package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, withTraceID(h.logger), withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/layers/{layerID}", func(r chi.Router) {
			r.Get("/schema", h.getSchema)
			r.Get("/versioning-state", h.getVersioningState)
			r.Get("/snapshot", h.getSnapshot)
			r.Get("/deltas", h.getDeltas)
			r.With(h.verifyBodyHash).Post("/deltas", h.postDeltas)
		})

		r.Route("/api/admin/layers/{layerID}", func(r chi.Router) {
			r.Post("/epoch", h.bumpEpoch)
			r.Post("/versioning", h.setVersioning)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (c *ControlHandler) Init() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, withTraceID(c.logger), withLogging)

	router.Handle("/metrics", promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/layers", func(r chi.Router) {
		// the progress stream hijacks the connection and must not be gzipped
		r.Get("/{layerID}/progress", c.streamProgress)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.Get("/", c.listLayers)
			r.Get("/{layerID}/status", c.getStatus)
			r.Post("/{layerID}/attach", c.attach)
			r.Post("/{layerID}/sync", c.sync)
			r.Post("/{layerID}/cancel", c.cancel)
			r.Post("/{layerID}/reset", c.reset)
			r.Post("/{layerID}/edits", c.recordEdit)
			r.Delete("/{layerID}", c.detach)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
