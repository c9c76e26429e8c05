package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"kpiboard/internal/domain"
	"kpiboard/internal/store"

	"github.com/go-chi/chi/v5"
)

// updateValueRequest accepts null to clear a stored value.
type updateValueRequest struct {
	Value *float64 `json:"value"`
}

func (h *Handler) handleUpdateIndicatorCurrent(w http.ResponseWriter, r *http.Request) {
	h.handleUpdateIndicatorValue(w, r, h.service.UpdateIndicatorCurrent)
}

func (h *Handler) handleUpdateIndicatorTarget(w http.ResponseWriter, r *http.Request) {
	h.handleUpdateIndicatorValue(w, r, h.service.UpdateIndicatorTarget)
}

func (h *Handler) handleUpdateIndicatorValue(w http.ResponseWriter, r *http.Request, update func(context.Context, int64, *float64) (domain.Indicator, error)) {
	indicatorID, err := parseID(chi.URLParam(r, "indicatorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid indicator id", map[string]string{"indicator_id": "invalid"})
		return
	}
	var req updateValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	ind, err := update(r.Context(), indicatorID, req.Value)
	if err != nil {
		writeServiceError(w, err, "indicator not found", "failed to update indicator")
		return
	}
	writeJSON(w, http.StatusOK, mapIndicator(ind, h.service.Thresholds(r.Context())))
}

type recordScoreRequest struct {
	PeriodID   int64    `json:"period_id"`
	CustomerID *int64   `json:"customer_id"`
	Value      *float64 `json:"value"`
	Note       string   `json:"note"`
}

func (h *Handler) handleRecordScore(w http.ResponseWriter, r *http.Request) {
	indicatorID, err := parseID(chi.URLParam(r, "indicatorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid indicator id", map[string]string{"indicator_id": "invalid"})
		return
	}
	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if req.PeriodID == 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "period_id required", map[string]string{"period_id": "required"})
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "value required", map[string]string{"value": "required"})
		return
	}
	score, err := h.service.RecordScore(r.Context(), store.ScoreInput{
		IndicatorID: indicatorID,
		PeriodID:    req.PeriodID,
		CustomerID:  req.CustomerID,
		Value:       *req.Value,
		Note:        req.Note,
	})
	if err != nil {
		writeServiceError(w, err, "indicator, period or customer not found", "failed to record score")
		return
	}
	writeJSON(w, http.StatusCreated, mapScore(score))
}

func (h *Handler) handleListScores(w http.ResponseWriter, r *http.Request) {
	indicatorID, err := parseID(chi.URLParam(r, "indicatorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid indicator id", map[string]string{"indicator_id": "invalid"})
		return
	}
	periodID, err := parseQueryID(r.URL.Query().Get("period_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid period_id", map[string]string{"period_id": "invalid"})
		return
	}
	customerID, err := parseQueryID(r.URL.Query().Get("customer_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer_id", map[string]string{"customer_id": "invalid"})
		return
	}
	scores, err := h.service.ListIndicatorScores(r.Context(), indicatorID, periodID, customerID)
	if err != nil {
		writeServiceError(w, err, "indicator not found", "failed to list scores")
		return
	}
	items := make([]scoreBody, 0, len(scores))
	for _, score := range scores {
		items = append(items, mapScore(score))
	}
	writeJSON(w, http.StatusOK, scoresResponse{Items: items})
}
