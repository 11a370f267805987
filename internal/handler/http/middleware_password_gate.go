package http

import (
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

const codePasswordChangeRequired = "password_change_required"

// passwordGateAllowList holds the paths reachable while a password change
// is pending.
var passwordGateAllowList = map[string]struct{}{
	pathAPIInitialPassword:     {},
	pathPasswordChangeRequired: {},
	pathLogout:                 {},
	pathHealth:                 {},
	pathPing:                   {},
}

// forcePasswordChange blocks every other route for accounts flagged to
// change their password. API clients get a structured 403, browsers a
// redirect to the change page.
func (h *Handler) forcePasswordChange(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.IdentityFromContext(r.Context())
		if !ok || !identity.MustChangePassword {
			next.ServeHTTP(w, r)
			return
		}
		if _, allowed := passwordGateAllowList[r.URL.Path]; allowed {
			next.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Info().Str("path", r.URL.Path).Msg("request blocked until password is changed")

		if utils.IsAPIRequest(r) {
			w.Header().Set("Location", pathAPIInitialPassword)
			utils.WriteJSON(w, models.MessageResponse{
				Success:  false,
				Message:  app.MsgPasswordChangeRequired,
				Code:     codePasswordChangeRequired,
				Redirect: pathAPIInitialPassword,
			}, http.StatusForbidden)
			return
		}
		redirect(w, r, pathPasswordChangeRequired)
	})
}
