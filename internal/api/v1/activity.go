package v1

import (
	"net/http"
	"strconv"
)

const defaultActivityLimit = 20

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid limit", map[string]string{"limit": "positive integer"})
			return
		}
		limit = parsed
	}
	entries, err := h.service.RecentActivity(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load activity", nil)
		return
	}
	items := make([]activityItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, activityItem{
			ID:         entry.ID,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Action:     entry.Action,
			Detail:     entry.Detail,
			CreatedAt:  entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, activityResponse{Items: items})
}
