package rollup

import (
	"math"

	"kpiboard/internal/domain"
)

// Progress is a computed roll-up percentage. Set distinguishes "no data"
// from zero: an entity with no usable children is not at 0%, it is not set.
// Values are unclamped and can exceed 100 when an indicator overshoots its
// target.
type Progress struct {
	Value float64
	Set   bool
}

func ProgressOf(value float64) Progress {
	return Progress{Value: value, Set: true}
}

// IndicatorProgress computes (current/target)*100 for one indicator. An
// indicator with a missing current or target value, or a non-positive
// target, is not set and contributes nothing to any aggregate.
func IndicatorProgress(ind domain.Indicator) Progress {
	if ind.CurrentValue == nil || ind.TargetValue == nil || *ind.TargetValue <= 0 {
		return Progress{}
	}
	return ProgressOf(*ind.CurrentValue / *ind.TargetValue * 100)
}

// ClampPercent bounds a progress value to 0..100 for display bars. Raw
// progress stays unclamped everywhere else.
func ClampPercent(value float64) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(math.Round(value))
}
