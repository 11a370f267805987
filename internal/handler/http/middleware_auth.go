package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

// authenticate resolves the caller of every request.
//
// A request carrying an Authorization header is an API client: the token must
// resolve to an active account or the request is answered with 401. Any other
// request is a browser: its session is loaded from the cookie (or started
// fresh) and attached to the context, and an authenticated session whose
// account vanished or was deactivated degrades to anonymous.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		if header := r.Header.Get("Authorization"); header != "" {
			key, err := utils.ParseAuthorizationToken(header)
			if err != nil {
				log.Info().Err(err).Msg("malformed authorization header")
				writeMessage(w, http.StatusUnauthorized, app.MsgInvalidToken)
				return
			}

			identity, err := h.services.AuthService.IdentityFromToken(ctx, key)
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				writeMessage(w, http.StatusUnauthorized, app.MsgInvalidToken)
				return
			case errors.Is(err, service.ErrInactiveAccount):
				writeMessage(w, http.StatusUnauthorized, app.MsgTokenOwnerInactive)
				return
			case err != nil:
				writeError(w, r, err)
				return
			}

			ctx = utils.WithIdentity(ctx, identity)
			ctx = log.WithAccount(identity.AccountID).WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		session, err := h.services.SessionService.Load(ctx, sessionCookieValue(r, h.cookie.name))
		if err != nil {
			log.Err(err).Str("func", "*Handler.authenticate").Msg("session store unavailable, continuing with a fresh session")
		}
		ctx = utils.WithSession(ctx, session)

		if session.Authenticated() {
			identity, err := h.services.AuthService.IdentityFromSession(ctx, session)
			switch {
			case err == nil:
				ctx = utils.WithIdentity(ctx, identity)
				ctx = log.WithAccount(identity.AccountID).WithContext(ctx)
			case errors.Is(err, service.ErrNoAccountFound), errors.Is(err, service.ErrInactiveAccount):
				log.Info().Err(err).Int64("account_id", session.AccountID).Msg("session account is no longer usable")
				session.AccountID = 0
			default:
				writeError(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects anonymous callers: API clients get 401, browsers are
// sent to the login page with the requested path in next.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.IdentityFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if utils.IsAPIRequest(r) {
			writeMessage(w, http.StatusUnauthorized, app.MsgAuthenticationRequired)
			return
		}
		redirect(w, r, pathLogin+"?next="+url.QueryEscape(r.URL.RequestURI()))
	})
}

func currentIdentity(r *http.Request) (models.Identity, bool) {
	return utils.IdentityFromContext(r.Context())
}
