package rollup

import (
	"reflect"
	"testing"

	"kpiboard/internal/domain"
	"kpiboard/internal/formula"
)

func TestReduceByStatus(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)

	reduced := engine.Reduce(tree, Filter{Status: domain.RAGGreen}, defaults)

	if len(reduced.Objectives) != 1 {
		t.Fatalf("expected surviving objective, got %d", len(reduced.Objectives))
	}
	obj := reduced.Objectives[0]
	if len(obj.Departments) != 1 {
		t.Fatalf("operations has no green leaves and must be pruned, got %d departments", len(obj.Departments))
	}
	commercial := obj.Departments[0]
	fo := commercial.FunctionalObjectives[0]
	if len(fo.KeyResults) != 2 {
		t.Fatalf("expected both key results to keep a green leaf, got %d", len(fo.KeyResults))
	}

	// Growth KR keeps only its green indicator, so MIN now yields 80.
	growth := fo.KeyResults[0]
	if len(growth.Indicators) != 1 || growth.Indicators[0].ID != 1 {
		t.Fatalf("expected only the green indicator to survive, got %+v", growth.Indicators)
	}
	if !growth.Progress.Set || growth.Progress.Value != 80 {
		t.Fatalf("pruned MIN must recompute to 80, got %+v", growth.Progress)
	}

	// The expression recomputes over the filtered children: (80 + 90) / 2.
	if !fo.Progress.Set || fo.Progress.Value != 85 {
		t.Fatalf("filtered FO must be 85, got %+v", fo.Progress)
	}
	if !obj.Progress.Set || obj.Progress.Value != 85 {
		t.Fatalf("filtered objective must be 85, got %+v", obj.Progress)
	}
}

func TestReduceRecomputesConsistently(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)
	reduced := engine.Reduce(tree, Filter{Status: domain.RAGGreen}, defaults)

	// The filtered ancestor value must equal a manual aggregate over just
	// the surviving leaves.
	quality := reduced.Objectives[0].Departments[0].FunctionalObjectives[0].KeyResults[1]
	values := make([]float64, 0, len(quality.Indicators))
	for _, ind := range quality.Indicators {
		values = append(values, ind.Progress.Value)
	}
	manual := AggregateValues(values, formula.Classify(quality.Formula).Kind)
	if quality.Progress != manual {
		t.Fatalf("filtered aggregate %+v differs from manual %+v", quality.Progress, manual)
	}
}

func TestReduceIdempotent(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)
	filter := Filter{Status: domain.RAGGreen}

	once := engine.Reduce(tree, filter, defaults)
	twice := engine.Reduce(once, filter, defaults)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reducing an already reduced tree must be a no-op")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	original := engine.Build(fixtureInput(), defaults)
	pristine := engine.Build(fixtureInput(), defaults)

	engine.Reduce(original, Filter{Status: domain.RAGRed}, defaults)
	if !reflect.DeepEqual(original, pristine) {
		t.Fatalf("reduce must not modify its input tree")
	}
}

func TestReduceByFeature(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)

	reduced := engine.Reduce(tree, Filter{FeatureIDs: []int64{1}}, defaults)
	obj := reduced.Objectives[0]
	if len(obj.Departments) != 1 {
		t.Fatalf("only commercial carries feature 1, got %d departments", len(obj.Departments))
	}
	fo := obj.Departments[0].FunctionalObjectives[0]
	if len(fo.KeyResults) != 1 {
		t.Fatalf("only the growth KR carries feature 1, got %d key results", len(fo.KeyResults))
	}
	growth := fo.KeyResults[0]
	if !growth.Progress.Set || growth.Progress.Value != 80 {
		t.Fatalf("expected 80, got %+v", growth.Progress)
	}
	// The FO expression references the pruned quality KR, so evaluation
	// fails and the average fallback applies.
	if !fo.Progress.Set || fo.Progress.Value != 80 {
		t.Fatalf("expected the fallback average 80, got %+v", fo.Progress)
	}
}

func TestReduceByDepartmentAllowlist(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)

	reduced := engine.Reduce(tree, Filter{DepartmentIDs: []int64{2}}, defaults)
	obj := reduced.Objectives[0]
	if len(obj.Departments) != 1 || obj.Departments[0].ID != 2 {
		t.Fatalf("expected only operations, got %+v", obj.Departments)
	}
	if obj.Progress.Set {
		t.Fatalf("operations has no data, objective must be not set, got %+v", obj.Progress)
	}
}

func TestReduceByIndicatorAllowlist(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)

	reduced := engine.Reduce(tree, Filter{IndicatorIDs: []int64{3}}, defaults)
	obj := reduced.Objectives[0]
	if len(obj.Departments) != 1 {
		t.Fatalf("only commercial keeps indicator 3, got %d departments", len(obj.Departments))
	}
	fo := obj.Departments[0].FunctionalObjectives[0]
	if len(fo.KeyResults) != 1 || fo.KeyResults[0].ID != 2 {
		t.Fatalf("expected only the quality KR to survive, got %+v", fo.KeyResults)
	}
	// The expression loses its growth reference, so the average fallback
	// carries the surviving 90.
	if !fo.Progress.Set || fo.Progress.Value != 90 {
		t.Fatalf("expected 90, got %+v", fo.Progress)
	}
}

func TestReduceNoSurvivors(t *testing.T) {
	engine := NewEngine()
	defaults := DefaultThresholds()
	tree := engine.Build(fixtureInput(), defaults)

	reduced := engine.Reduce(tree, Filter{Status: domain.RAGAmber}, defaults)
	if len(reduced.Objectives) != 0 {
		t.Fatalf("no amber leaves exist, expected an empty tree, got %+v", reduced.Objectives)
	}
}
