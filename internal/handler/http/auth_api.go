package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

const maxRequestBodySize = 1 << 20

// apiLogin exchanges credentials for the account's API token.
func (h *Handler) apiLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		log.Info().Err(err).Str("func", "*Handler.apiLogin").Msg("invalid login payload")
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	result, err := h.services.AuthService.LoginAPI(r.Context(), req.LoginIdentifier(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := models.LoginResponse{
		Success:            true,
		Message:            app.MsgLoginSuccessful,
		MustChangePassword: result.MustChangePassword,
		User:               result.Account,
	}
	if result.Token != nil {
		resp.Token = &result.Token.Key
	} else {
		resp.Message = app.MsgTokenNotIssued
	}

	log.Info().Int64("account_id", result.Account.ID).Bool("must_change_password", result.MustChangePassword).Msg("api login")
	utils.WriteJSON(w, resp, http.StatusOK)
}

// apiInitialPassword sets the password of an account that was told to
// change it, without asking for the current one.
func (h *Handler) apiInitialPassword(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)

	var req models.InitialPasswordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", "*Handler.apiInitialPassword").Msg("invalid password payload")
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	message, err := h.services.PasswordService.ChangeInitial(r.Context(), identity, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, message)
}
