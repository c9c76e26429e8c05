package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"kpiboard/internal/service"

	"github.com/go-chi/chi/v5"
)

// formulaRequest accepts null to clear a stored formula.
type formulaRequest struct {
	Formula *string `json:"formula"`
}

func (r formulaRequest) text() string {
	if r.Formula == nil {
		return ""
	}
	return *r.Formula
}

func (h *Handler) handleSetKeyResultFormula(w http.ResponseWriter, r *http.Request) {
	h.handleSetFormula(w, r, chi.URLParam(r, "krID"), "key result not found", h.service.SetKeyResultFormula)
}

func (h *Handler) handleSetFunctionalObjectiveFormula(w http.ResponseWriter, r *http.Request) {
	h.handleSetFormula(w, r, chi.URLParam(r, "foID"), "functional objective not found", h.service.SetFunctionalObjectiveFormula)
}

func (h *Handler) handleSetFormula(w http.ResponseWriter, r *http.Request, rawID, notFoundMessage string, set func(context.Context, int64, string) (service.FormulaResult, error)) {
	id, err := parseID(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id", map[string]string{"id": "invalid"})
		return
	}
	var req formulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	result, err := set(r.Context(), id, req.text())
	if err != nil {
		writeServiceError(w, err, notFoundMessage, "failed to save formula")
		return
	}
	writeJSON(w, http.StatusOK, mapFormulaResult(result))
}

func (h *Handler) handleValidateFormula(w http.ResponseWriter, r *http.Request) {
	var req formulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	writeJSON(w, http.StatusOK, mapFormulaResult(h.service.ValidateFormula(req.text())))
}
