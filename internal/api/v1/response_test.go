package v1

import (
	"testing"
	"time"

	"kpiboard/internal/domain"
	"kpiboard/internal/rollup"
)

func TestMapProgress(t *testing.T) {
	cases := []struct {
		name     string
		progress rollup.Progress
		wantNil  bool
		wantBar  int
	}{
		{name: "not set", progress: rollup.Progress{}, wantNil: true, wantBar: 0},
		{name: "in range", progress: rollup.ProgressOf(70), wantBar: 70},
		{name: "overshoot keeps raw value", progress: rollup.ProgressOf(150), wantBar: 100},
		{name: "negative clamps bar only", progress: rollup.ProgressOf(-5), wantBar: 0},
		{name: "bar rounds", progress: rollup.ProgressOf(66.6), wantBar: 67},
	}
	for _, tc := range cases {
		body := mapProgress(tc.progress)
		if tc.wantNil {
			if body.Value != nil {
				t.Fatalf("%s: expected nil value, got %v", tc.name, *body.Value)
			}
		} else {
			if body.Value == nil {
				t.Fatalf("%s: expected value", tc.name)
			}
			if *body.Value != tc.progress.Value {
				t.Fatalf("%s: expected raw value %v, got %v", tc.name, tc.progress.Value, *body.Value)
			}
		}
		if body.Bar != tc.wantBar {
			t.Fatalf("%s: expected bar %d, got %d", tc.name, tc.wantBar, body.Bar)
		}
	}
}

func TestMapOverview(t *testing.T) {
	current, target := 50.0, 100.0
	tree := rollup.Tree{Objectives: []rollup.OrgObjectiveNode{{
		ID:             1,
		Name:           "Customer Success",
		Classification: domain.ClassificationStrategic,
		Progress:       rollup.ProgressOf(50),
		Status:         domain.RAGRed,
		Departments: []rollup.DepartmentNode{{
			ID:       2,
			Name:     "Commercial",
			Progress: rollup.ProgressOf(50),
			Status:   domain.RAGRed,
			FunctionalObjectives: []rollup.FunctionalObjectiveNode{{
				ID:       3,
				Name:     "Grow accounts",
				Formula:  "MIN(Growth)",
				Progress: rollup.ProgressOf(50),
				Status:   domain.RAGRed,
				KeyResults: []rollup.KeyResultNode{{
					ID:              4,
					Name:            "Growth",
					Weight:          60,
					Progress:        rollup.ProgressOf(50),
					Status:          domain.RAGRed,
					IndicatorStatus: domain.RAGRed,
					Indicators: []rollup.IndicatorNode{{
						ID:           5,
						Name:         "New ARR",
						Unit:         "$",
						Weight:       100,
						CurrentValue: &current,
						TargetValue:  &target,
						FeatureIDs:   []int64{10, 11},
						Progress:     rollup.ProgressOf(50),
						Status:       domain.RAGRed,
					}},
				}},
			}},
		}},
	}}}

	resp := mapOverview(tree)
	if len(resp.Items) != 1 {
		t.Fatalf("expected one objective, got %d", len(resp.Items))
	}
	obj := resp.Items[0]
	if obj.Classification != "STRATEGIC" {
		t.Fatalf("expected classification STRATEGIC, got %s", obj.Classification)
	}
	if obj.Status != "red" {
		t.Fatalf("expected status red, got %s", obj.Status)
	}
	kr := obj.Departments[0].FunctionalObjectives[0].KeyResults[0]
	if kr.IndicatorStatus != "red" {
		t.Fatalf("expected indicator_status red, got %s", kr.IndicatorStatus)
	}
	ind := kr.Indicators[0]
	if len(ind.FeatureIDs) != 2 {
		t.Fatalf("expected feature ids, got %v", ind.FeatureIDs)
	}
	if ind.Progress.Value == nil || *ind.Progress.Value != 50 {
		t.Fatalf("expected indicator progress 50")
	}
}

func TestMapIndicator(t *testing.T) {
	current, target := 80.0, 100.0
	body := mapIndicator(domain.Indicator{
		ID:           1,
		KeyResultID:  2,
		Name:         "Expansion",
		CurrentValue: &current,
		TargetValue:  &target,
	}, rollup.DefaultThresholds())
	if body.Progress.Value == nil || *body.Progress.Value != 80 {
		t.Fatalf("expected progress 80")
	}
	if body.Status != "green" {
		t.Fatalf("expected status green, got %s", body.Status)
	}

	unset := mapIndicator(domain.Indicator{ID: 2, Name: "Renewal"}, rollup.DefaultThresholds())
	if unset.Progress.Value != nil {
		t.Fatalf("expected nil progress for unset indicator")
	}
	if unset.Status != "not_set" {
		t.Fatalf("expected status not_set, got %s", unset.Status)
	}
}

func TestMapBreakdown(t *testing.T) {
	resp := mapBreakdown(rollup.Breakdown{Green: 2, Amber: 1, Red: 1, NotSet: 4})
	if resp.Total != 8 {
		t.Fatalf("expected total 8, got %d", resp.Total)
	}
	if resp.CompletionPct != 50 {
		t.Fatalf("expected completion 50, got %v", resp.CompletionPct)
	}
}

func TestMapPeriodInfo(t *testing.T) {
	info := mapPeriodInfo(domain.Period{
		ID:       1,
		Name:     "2026 Q1",
		StartsOn: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if info.StartsOn != "2026-01-01" || info.EndsOn != "2026-03-31" {
		t.Fatalf("unexpected period dates: %s .. %s", info.StartsOn, info.EndsOn)
	}
}
