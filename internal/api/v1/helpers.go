package v1

import (
	"fmt"
	"strconv"
	"strings"

	"kpiboard/internal/domain"
)

// parseID parses a path segment into an entity id.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// parseQueryID treats an absent query value as zero.
func parseQueryID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return parseID(raw)
}

// parseIDList splits a comma separated query value into ids.
func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := parseID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func validStatus(status domain.RAGStatus) bool {
	switch status {
	case domain.RAGGreen, domain.RAGAmber, domain.RAGRed, domain.RAGNotSet:
		return true
	default:
		return false
	}
}
