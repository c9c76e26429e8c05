package v1

import (
	"encoding/json"
	"net/http"

	"kpiboard/internal/domain"
)

func (h *Handler) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	t := h.service.Thresholds(r.Context())
	writeJSON(w, http.StatusOK, thresholdsBody{GreenMin: t.GreenMin, AmberMin: t.AmberMin})
}

func (h *Handler) handleSaveThresholds(w http.ResponseWriter, r *http.Request) {
	var req thresholdsBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if req.AmberMin <= 0 || req.GreenMin > 100 || req.AmberMin > req.GreenMin {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "thresholds must satisfy 0 < amber_min <= green_min <= 100", map[string]string{"amber_min": "0..green_min", "green_min": "amber_min..100"})
		return
	}
	if err := h.service.SaveThresholds(r.Context(), domain.Thresholds{GreenMin: req.GreenMin, AmberMin: req.AmberMin}); err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to save thresholds", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
