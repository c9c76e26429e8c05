package rollup

import (
	"kpiboard/internal/domain"
)

const (
	DefaultGreenMin = 76
	DefaultAmberMin = 51
)

// DefaultThresholds returns the stock RAG bands: 76 and above green, 51..75
// amber, below 51 red. Deployments override them through the admin
// threshold config.
func DefaultThresholds() domain.Thresholds {
	return domain.Thresholds{GreenMin: DefaultGreenMin, AmberMin: DefaultAmberMin}
}

// StatusOf classifies a progress value against threshold bands. A not-set
// progress maps to RAGNotSet, which is a first-class value rather than an
// error.
func StatusOf(p Progress, t domain.Thresholds) domain.RAGStatus {
	if !p.Set {
		return domain.RAGNotSet
	}
	switch {
	case p.Value >= t.GreenMin:
		return domain.RAGGreen
	case p.Value >= t.AmberMin:
		return domain.RAGAmber
	default:
		return domain.RAGRed
	}
}

// IndicatorProportionStatus derives a key result's status from how its
// indicators are individually classified instead of from the blended
// percentage: red when at least half the indicators are red, amber when at
// least 30% are red or at least half are amber, green otherwise. Shares are
// taken over all indicators. Dashboard views use this rule and the
// threshold rule side by side; the two can disagree for the same key result
// and both answers are kept.
func IndicatorProportionStatus(statuses []domain.RAGStatus) domain.RAGStatus {
	total := len(statuses)
	if total == 0 {
		return domain.RAGNotSet
	}
	var red, amber, classified int
	for _, status := range statuses {
		switch status {
		case domain.RAGRed:
			red++
			classified++
		case domain.RAGAmber:
			amber++
			classified++
		case domain.RAGGreen:
			classified++
		}
	}
	if classified == 0 {
		return domain.RAGNotSet
	}
	redShare := float64(red) / float64(total)
	amberShare := float64(amber) / float64(total)
	switch {
	case redShare >= 0.5:
		return domain.RAGRed
	case redShare >= 0.3 || amberShare >= 0.5:
		return domain.RAGAmber
	default:
		return domain.RAGGreen
	}
}
