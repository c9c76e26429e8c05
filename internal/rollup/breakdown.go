package rollup

import (
	"kpiboard/internal/domain"
)

// Breakdown tallies indicator-level statuses within some scope.
type Breakdown struct {
	Green  int
	Amber  int
	Red    int
	NotSet int
}

func (b Breakdown) Total() int {
	return b.Green + b.Amber + b.Red + b.NotSet
}

// CompletionPct is the share of indicators with enough data to classify,
// as a 0..100 value: classified / (classified + not yet set).
func (b Breakdown) CompletionPct() float64 {
	classified := b.Green + b.Amber + b.Red
	total := classified + b.NotSet
	if total == 0 {
		return 0
	}
	return float64(classified) / float64(total) * 100
}

func CountStatuses(statuses []domain.RAGStatus) Breakdown {
	var b Breakdown
	for _, status := range statuses {
		switch status {
		case domain.RAGGreen:
			b.Green++
		case domain.RAGAmber:
			b.Amber++
		case domain.RAGRed:
			b.Red++
		default:
			b.NotSet++
		}
	}
	return b
}

// LeafStatuses flattens the tree to its indicator statuses in walk order.
func (t Tree) LeafStatuses() []domain.RAGStatus {
	statuses := make([]domain.RAGStatus, 0, 16)
	for _, obj := range t.Objectives {
		for _, dept := range obj.Departments {
			for _, fo := range dept.FunctionalObjectives {
				for _, kr := range fo.KeyResults {
					for _, ind := range kr.Indicators {
						statuses = append(statuses, ind.Status)
					}
				}
			}
		}
	}
	return statuses
}

func (t Tree) Breakdown() Breakdown {
	return CountStatuses(t.LeafStatuses())
}

// ComplianceStatus classifies a customer's data entry for a period.
// Expected is how many indicator-feature links cover the customer's
// assigned features; filled is how many distinct indicators the customer
// scored in the period. A customer who entered nothing is pending even when
// nothing was expected of them.
func ComplianceStatus(filled, expected int) domain.Compliance {
	switch {
	case filled == 0:
		return domain.CompliancePending
	case filled < expected:
		return domain.CompliancePartial
	default:
		return domain.ComplianceComplete
	}
}
