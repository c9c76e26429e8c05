package v1

import (
	"net/http"

	"kpiboard/internal/domain"
	"kpiboard/internal/service"
)

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter service.OverviewFilter
	if raw := query.Get("status"); raw != "" {
		status := domain.RAGStatus(raw)
		if !validStatus(status) {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status", map[string]string{"status": "invalid"})
			return
		}
		filter.Status = status
	}
	customerID, err := parseQueryID(query.Get("customer_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer_id", map[string]string{"customer_id": "invalid"})
		return
	}
	filter.CustomerID = customerID
	featureID, err := parseQueryID(query.Get("feature_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid feature_id", map[string]string{"feature_id": "invalid"})
		return
	}
	filter.FeatureID = featureID
	departmentIDs, err := parseIDList(query.Get("departments"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid departments", map[string]string{"departments": "invalid"})
		return
	}
	filter.DepartmentIDs = departmentIDs

	tree, err := h.service.FilteredOverview(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "customer not found", "failed to build overview")
		return
	}
	writeJSON(w, http.StatusOK, mapOverview(tree))
}

func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var scope service.BreakdownScope
	var err error
	if scope.DepartmentID, err = parseQueryID(query.Get("department_id")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid department_id", map[string]string{"department_id": "invalid"})
		return
	}
	if scope.CustomerID, err = parseQueryID(query.Get("customer_id")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer_id", map[string]string{"customer_id": "invalid"})
		return
	}
	if scope.FeatureID, err = parseQueryID(query.Get("feature_id")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid feature_id", map[string]string{"feature_id": "invalid"})
		return
	}
	if scope.PeriodID, err = parseQueryID(query.Get("period_id")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid period_id", map[string]string{"period_id": "invalid"})
		return
	}

	breakdown, err := h.service.Breakdown(r.Context(), scope)
	if err != nil {
		writeServiceError(w, err, "scope not found", "failed to build breakdown")
		return
	}
	writeJSON(w, http.StatusOK, mapBreakdown(breakdown))
}
