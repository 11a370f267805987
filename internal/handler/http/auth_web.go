package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/views"
	"github.com/MKhiriev/go-community-access/models"
)

// formStatus is the status of a page re-rendered after a failed submission.
// Validation errors are shown with 200, infrastructure failures keep theirs.
func formStatus(err error) int {
	if status := statusFromError(err); status >= http.StatusInternalServerError {
		return status
	}
	return http.StatusOK
}

// formErrors lists every message to show for err.
func formErrors(err error) []string {
	if details := errorDetails(err); len(details) > 0 {
		return details
	}
	return []string{messageFromError(err)}
}

// safeNext keeps local redirect targets only.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return pathHome
	}
	return next
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentIdentity(r); ok {
		redirect(w, r, safeNext(r.URL.Query().Get("next")))
		return
	}
	h.render(w, r, http.StatusOK, views.PageLogin, views.PageData{
		Title: "Sign in",
		Next:  r.URL.Query().Get("next"),
	})
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identifier := strings.TrimSpace(r.PostFormValue("username"))
	next := r.PostFormValue("next")

	record, err := h.services.AuthService.Authenticate(ctx, identifier, r.PostFormValue("password"))
	if err != nil {
		h.render(w, r, formStatus(err), views.PageLogin, views.PageData{
			Title:    "Sign in",
			Errors:   formErrors(err),
			Next:     next,
			Username: identifier,
		})
		return
	}

	account := record.GetAccount()
	session, err := h.services.SessionService.Start(ctx, h.currentSession(r), account.ID)
	if err == nil {
		err = h.saveSession(w, r, session)
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.loginSubmit").Int64("account_id", account.ID).Msg("failed to start session")
		h.render(w, r, http.StatusInternalServerError, views.PageLogin, views.PageData{
			Title:    "Sign in",
			Errors:   []string{app.MsgInternalServerError},
			Next:     next,
			Username: identifier,
		})
		return
	}

	log.Info().Int64("account_id", account.ID).Msg("web login")

	if models.MustChangePassword(record) {
		redirect(w, r, pathPasswordChangeRequired)
		return
	}
	redirect(w, r, safeNext(next))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.destroySession(w, r, h.currentSession(r))
	redirect(w, r, pathLogin)
}

func (h *Handler) passwordChangeRequiredPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PagePasswordChangeRequired, views.PageData{
		Title: "Change your password",
	})
}

func (h *Handler) passwordChangeRequiredSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := currentIdentity(r)

	form := models.PasswordChangeForm{
		CurrentPassword: r.PostFormValue("old_password"),
		NewPassword:     r.PostFormValue("new_password1"),
		ConfirmPassword: r.PostFormValue("new_password2"),
	}
	if err := h.services.PasswordService.ChangeWithCurrent(ctx, identity, form); err != nil {
		h.render(w, r, formStatus(err), views.PagePasswordChangeRequired, views.PageData{
			Title:  "Change your password",
			Errors: formErrors(err),
		})
		return
	}

	// the password changed, so the session id changes with it
	session, err := h.services.SessionService.Start(ctx, h.currentSession(r), identity.AccountID)
	if err == nil {
		session.AddFlash(models.FlashSuccess, app.MsgPasswordUpdated)
		err = h.saveSession(w, r, session)
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.passwordChangeRequiredSubmit").Msg("failed to renew session after password change")
		redirect(w, r, pathLogin)
		return
	}
	redirect(w, r, pathHome)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageHome, views.PageData{Title: "Home"})
}
