package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/go-chi/chi/v5"
)

var errInvalidAccountID = errors.New("invalid account id")

func accountIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidAccountID
	}
	return id, nil
}

// usersByRole lists active members of a role for selectors.
func (h *Handler) usersByRole(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)

	members, err := h.services.AccessService.ListByRole(r.Context(), identity, r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if members == nil {
		members = []models.RoleListEntry{}
	}

	utils.WriteJSON(w, models.UsersByRoleResponse{Results: members}, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)
	targetID, err := accountIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidAccountID)
		return
	}

	result, err := h.services.AccessService.Deactivate(r.Context(), identity, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !result.Changed {
		writeMessage(w, http.StatusOK, app.MsgAlreadyInactive)
		return
	}
	logger.FromRequest(r).Info().Int64("target_id", targetID).Msg("account deactivated")
	writeMessage(w, http.StatusOK, fmt.Sprintf("Account %q deactivated.", result.Account.Username))
}

func (h *Handler) restoreUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)
	targetID, err := accountIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidAccountID)
		return
	}

	result, err := h.services.AccessService.Restore(r.Context(), identity, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !result.Changed {
		writeMessage(w, http.StatusOK, app.MsgAlreadyActive)
		return
	}
	logger.FromRequest(r).Info().Int64("target_id", targetID).Msg("account restored")
	writeMessage(w, http.StatusOK, fmt.Sprintf("Account %q restored.", result.Account.Username))
}

func (h *Handler) forceUserPasswordChange(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)
	targetID, err := accountIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidAccountID)
		return
	}

	account, err := h.services.AccessService.ForcePasswordChange(r.Context(), identity, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Account %q must change its password at next sign in.", account.Username))
}

// deleteUser removes an account for good. Confirmation comes from
// ?confirm=true or a {"confirm":true} body.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := currentIdentity(r)
	targetID, err := accountIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidAccountID)
		return
	}

	confirmed, err := deleteConfirmation(w, r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	account, err := h.services.AccessService.Delete(r.Context(), identity, targetID, confirmed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Warn().Int64("target_id", targetID).Str("username", account.Username).Msg("account deleted")
	writeMessage(w, http.StatusOK, fmt.Sprintf("Account %q deleted.", account.Username))
}

func deleteConfirmation(w http.ResponseWriter, r *http.Request) (bool, error) {
	if confirmed, err := strconv.ParseBool(r.URL.Query().Get("confirm")); err == nil && confirmed {
		return true, nil
	}
	if r.Body == nil {
		return false, nil
	}

	var req models.DeleteAccountRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return req.Confirm, nil
}
