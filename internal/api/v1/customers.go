package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load customers", nil)
		return
	}
	items := make([]customerInfo, 0, len(customers))
	for _, customer := range customers {
		items = append(items, customerInfo{ID: customer.ID, Name: customer.Name})
	}
	writeJSON(w, http.StatusOK, customersResponse{Items: items})
}

func (h *Handler) handleCustomerCompliance(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseID(chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer id", map[string]string{"customer_id": "invalid"})
		return
	}
	periodID, err := parseQueryID(r.URL.Query().Get("period_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid period_id", map[string]string{"period_id": "invalid"})
		return
	}
	if periodID == 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "period_id required", map[string]string{"period_id": "required"})
		return
	}
	report, err := h.service.CustomerCompliance(r.Context(), customerID, periodID)
	if err != nil {
		writeServiceError(w, err, "customer or period not found", "failed to compute compliance")
		return
	}
	writeJSON(w, http.StatusOK, mapCompliance(report))
}
