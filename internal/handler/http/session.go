package http

import (
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

// currentSession returns the session attached by authenticate. Requests
// authenticated with an API token carry none and get a fresh one.
func (h *Handler) currentSession(r *http.Request) *models.Session {
	if session, ok := utils.SessionFromContext(r.Context()); ok {
		return session
	}
	session, _ := h.services.SessionService.Load(r.Context(), "")
	return session
}

// saveSession persists session and writes its signed cookie.
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, session *models.Session) error {
	cookie, err := h.services.SessionService.Save(r.Context(), session)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.name,
		Value:    cookie.String(),
		Path:     "/",
		MaxAge:   int(h.cookie.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// destroySession deletes session and expires the browser cookie.
func (h *Handler) destroySession(w http.ResponseWriter, r *http.Request, session *models.Session) {
	if err := h.services.SessionService.Destroy(r.Context(), session); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.destroySession").Msg("failed to delete session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionCookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
