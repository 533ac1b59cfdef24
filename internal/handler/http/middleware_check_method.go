// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-geo-sync/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// Instead of chi's 405 it answers 404, so callers probing with an
// unsupported method learn nothing about the route. Requests whose method
// does match a route pattern are routed normally.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		utils.WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "")
	}
}
