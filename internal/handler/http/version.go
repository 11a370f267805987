package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/logger"
)

// getServerVersion answers with the bare version string so deploy scripts
// can compare it without a JSON parser.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, version); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing version response")
	}
}
