package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// Ping проверяет доступность хранилища.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /ping [get]
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if h.Svc.Health != nil {
		if err := h.Svc.Health.Ping(r.Context()); err != nil {
			h.Log.Logger.Sugar().Warnw("ping failed", "error", err)
			WriteError(w, http.StatusServiceUnavailable, serr.ErrStoreUnavailable)
			return
		}
	}
	WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
