// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/utils"
)

// probedMethods are tried, in this order, to build the Allow header.
var probedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// methodNotAllowed is registered with [chi.Mux.MethodNotAllowed]. It answers
// 405 with an Allow header built by probing the router through
// [chi.Mux.Match], which sees URL parameters and sub-routers. API callers get
// the JSON envelope, browsers a plain text body.
func methodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) == 0 {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		if utils.IsAPIRequest(r) {
			writeMessage(w, http.StatusMethodNotAllowed, app.MsgMethodNotAllowed)
			return
		}
		http.Error(w, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func allowedMethods(router *chi.Mux, path string) []string {
	var allowed []string
	for _, method := range probedMethods {
		if router.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
			// GET routes answer HEAD through middleware.GetHead
			if method == http.MethodGet {
				allowed = append(allowed, http.MethodHead)
			}
		}
	}
	return allowed
}
