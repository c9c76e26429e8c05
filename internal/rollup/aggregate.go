package rollup

import (
	"kpiboard/internal/formula"
)

// Child is one input to an aggregation: the child entity's display name
// (bound to expression references), its weight for weighted strategies, and
// its already-computed progress.
type Child struct {
	Name     string
	Weight   int
	Progress Progress
}

// Aggregate rolls child progress values into one parent value using the
// classified strategy. Children that are not set are excluded first; with
// zero set children the result is not set, never zero. An expression that
// fails to parse or evaluate falls back silently to the average, so a
// malformed admin-entered formula can never break a dashboard read.
func Aggregate(children []Child, strategy formula.Strategy, cache *formula.Cache) Progress {
	set := make([]Child, 0, len(children))
	for _, child := range children {
		if child.Progress.Set {
			set = append(set, child)
		}
	}
	if len(set) == 0 {
		return Progress{}
	}
	switch strategy.Kind {
	case formula.KindMin:
		return ProgressOf(minOf(set))
	case formula.KindWeighted:
		return ProgressOf(weightedMean(set))
	case formula.KindExpression:
		if value, err := evalExpression(set, strategy.Expr, cache); err == nil {
			return ProgressOf(value)
		}
		return ProgressOf(mean(set))
	default:
		return ProgressOf(mean(set))
	}
}

// AggregateValues aggregates bare percentages with a keyword strategy.
// Weighted input without weights and expression strategies, which both need
// information only children carry, land on the average here.
func AggregateValues(values []float64, kind formula.Kind) Progress {
	children := make([]Child, 0, len(values))
	for _, value := range values {
		children = append(children, Child{Progress: ProgressOf(value)})
	}
	return Aggregate(children, formula.Strategy{Kind: kind}, nil)
}

func mean(children []Child) float64 {
	var sum float64
	for _, child := range children {
		sum += child.Progress.Value
	}
	return sum / float64(len(children))
}

func minOf(children []Child) float64 {
	min := children[0].Progress.Value
	for _, child := range children[1:] {
		if child.Progress.Value < min {
			min = child.Progress.Value
		}
	}
	return min
}

func weightedMean(children []Child) float64 {
	var sumWeight int
	var weighted float64
	for _, child := range children {
		sumWeight += child.Weight
		weighted += child.Progress.Value * float64(child.Weight)
	}
	if sumWeight == 0 {
		return mean(children)
	}
	return weighted / float64(sumWeight)
}

func evalExpression(children []Child, src string, cache *formula.Cache) (float64, error) {
	var expr formula.Expr
	var err error
	if cache != nil {
		expr, err = cache.Parse(src)
	} else {
		expr, err = formula.Parse(src)
	}
	if err != nil {
		return 0, err
	}
	bindings := make(map[string]float64, len(children))
	for _, child := range children {
		bindings[child.Name] = child.Progress.Value
	}
	return formula.Evaluate(expr, bindings)
}
