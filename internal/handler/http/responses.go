package http

import (
	"bytes"
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/internal/views"
	"github.com/MKhiriev/go-community-access/models"
)

func writeMessage(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, models.MessageResponse{
		Success: status < http.StatusBadRequest,
		Message: message,
	}, status)
}

// writeError answers an API request with the status and message mapped
// from err. Authorization failures are logged as warnings, infrastructure
// failures as errors.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	switch {
	case status >= http.StatusInternalServerError:
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	case status == http.StatusForbidden:
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	default:
		log.Info().Err(err).Str("path", r.URL.Path).Msg("request refused")
	}

	utils.WriteJSON(w, models.MessageResponse{
		Success: false,
		Message: messageFromError(err),
		Errors:  errorDetails(err),
	}, status)
}

// render writes page with status. Pending flashes are moved from the
// session into the page, and the identity is filled in for the header.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page views.Page, data views.PageData) {
	log := logger.FromRequest(r)

	if identity, ok := utils.IdentityFromContext(r.Context()); ok && data.Identity == nil {
		data.Identity = &identity
	}

	if session, ok := utils.SessionFromContext(r.Context()); ok {
		if flashes := session.PopFlashes(); len(flashes) > 0 {
			data.Flashes = append(flashes, data.Flashes...)
			if err := h.saveSession(w, r, session); err != nil {
				log.Err(err).Str("func", "*Handler.render").Msg("failed to persist consumed flashes")
			}
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, data); err != nil {
		log.Err(err).Str("func", "*Handler.render").Str("page", string(page)).Msg("rendering page failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect sends a 302 to target.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
