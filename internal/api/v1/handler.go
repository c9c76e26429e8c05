package v1

import (
	"kpiboard/internal/service"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the dashboard API over HTTP.
type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/overview", h.handleOverview)
	r.Get("/breakdown", h.handleBreakdown)

	r.Put("/indicators/{indicatorID}/current", h.handleUpdateIndicatorCurrent)
	r.Put("/indicators/{indicatorID}/target", h.handleUpdateIndicatorTarget)
	r.Post("/indicators/{indicatorID}/scores", h.handleRecordScore)
	r.Get("/indicators/{indicatorID}/scores", h.handleListScores)

	r.Put("/key-results/{krID}/formula", h.handleSetKeyResultFormula)
	r.Put("/functional-objectives/{foID}/formula", h.handleSetFunctionalObjectiveFormula)
	r.Post("/formulas/validate", h.handleValidateFormula)

	r.Get("/thresholds", h.handleGetThresholds)
	r.Put("/thresholds", h.handleSaveThresholds)

	r.Get("/customers", h.handleCustomers)
	r.Get("/customers/{customerID}/compliance", h.handleCustomerCompliance)
	r.Get("/features", h.handleFeatures)
	r.Get("/periods", h.handlePeriods)
	r.Get("/activity", h.handleActivity)

	return r
}
