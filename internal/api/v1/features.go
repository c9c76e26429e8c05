package v1

import (
	"net/http"
)

func (h *Handler) handleFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.service.ListFeatures(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load features", nil)
		return
	}
	items := make([]featureInfo, 0, len(features))
	for _, feature := range features {
		items = append(items, featureInfo{ID: feature.ID, Name: feature.Name})
	}
	writeJSON(w, http.StatusOK, featuresResponse{Items: items})
}
