package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/views"
	"github.com/MKhiriev/go-community-access/models"
)

func (h *Handler) recoverRequestPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRecoverRequest, views.PageData{Title: "Recover your account"})
}

// recoverRequestSubmit is step one of the recovery flow: send a code to
// the submitted address.
func (h *Handler) recoverRequestSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	session := h.currentSession(r)
	email := strings.TrimSpace(r.PostFormValue("email"))

	err := h.services.RecoveryService.RequestCode(r.Context(), session, email)
	switch {
	case err == nil:
		if err := h.saveSession(w, r, session); err != nil {
			log.Err(err).Str("func", "*Handler.recoverRequestSubmit").Msg("failed to persist recovery session")
			h.renderRecoverRequest(w, r, http.StatusServiceUnavailable, email, app.MsgRecoveryUnavailable)
			return
		}
		redirect(w, r, pathRecoverVerify)
	case errors.Is(err, service.ErrNoAccountFound):
		h.renderRecoverRequest(w, r, http.StatusOK, email, app.MsgNoAccountForEmail)
	case errors.Is(err, service.ErrNoProfile):
		h.renderRecoverRequest(w, r, http.StatusOK, email, app.MsgNoProfile)
	default:
		log.Err(err).Str("func", "*Handler.recoverRequestSubmit").Msg("recovery code request failed")
		h.renderRecoverRequest(w, r, http.StatusServiceUnavailable, email, app.MsgRecoveryUnavailable)
	}
}

func (h *Handler) renderRecoverRequest(w http.ResponseWriter, r *http.Request, status int, email, message string) {
	h.render(w, r, status, views.PageRecoverRequest, views.PageData{
		Title:  "Recover your account",
		Errors: []string{message},
		Email:  email,
	})
}

func (h *Handler) recoverVerifyPage(w http.ResponseWriter, r *http.Request) {
	session := h.currentSession(r)
	email, ok := h.services.RecoveryService.Pending(session)
	if !ok {
		h.restartRecovery(w, r, session)
		return
	}
	h.render(w, r, http.StatusOK, views.PageRecoverVerify, views.PageData{
		Title: "Enter your code",
		Email: email,
	})
}

// recoverVerifySubmit is step two: check the code and set the new password.
func (h *Handler) recoverVerifySubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	session := h.currentSession(r)
	email := session.RecoveryEmail

	form := models.RecoveryForm{
		Code:            strings.TrimSpace(r.PostFormValue("code")),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	err := h.services.RecoveryService.Reset(r.Context(), session, form)
	switch {
	case err == nil:
		if err := h.saveSession(w, r, session); err != nil {
			log.Err(err).Str("func", "*Handler.recoverVerifySubmit").Msg("failed to persist session after reset")
		}
		redirect(w, r, pathLogin)
	case errors.Is(err, service.ErrSessionExpired):
		h.restartRecovery(w, r, session)
	default:
		h.render(w, r, formStatus(err), views.PageRecoverVerify, views.PageData{
			Title:  "Enter your code",
			Errors: formErrors(err),
			Email:  email,
		})
	}
}

// restartRecovery sends the browser back to step one with an explanation.
func (h *Handler) restartRecovery(w http.ResponseWriter, r *http.Request, session *models.Session) {
	session.ClearRecovery()
	session.AddFlash(models.FlashError, messageFromError(service.ErrSessionExpired))
	if err := h.saveSession(w, r, session); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.restartRecovery").Msg("failed to persist session")
	}
	redirect(w, r, pathRecover)
}
