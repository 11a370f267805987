package http

import (
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.PingResponse{OK: true, Detail: "pong"}, http.StatusOK)
}
