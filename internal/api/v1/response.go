package v1

import (
	"time"

	"kpiboard/internal/domain"
	"kpiboard/internal/rollup"
	"kpiboard/internal/service"
)

// progressBody carries the raw roll-up value alongside a 0..100 bar for
// rendering. A null value means the subtree has no usable data yet.
type progressBody struct {
	Value *float64 `json:"value"`
	Bar   int      `json:"bar"`
}

type overviewResponse struct {
	Items []objectiveNode `json:"items"`
}

type objectiveNode struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Color          string           `json:"color"`
	Classification string           `json:"classification"`
	Progress       progressBody     `json:"progress"`
	Status         string           `json:"status"`
	Departments    []departmentNode `json:"departments"`
}

type departmentNode struct {
	ID                   int64                     `json:"id"`
	Name                 string                    `json:"name"`
	Color                string                    `json:"color"`
	Progress             progressBody              `json:"progress"`
	Status               string                    `json:"status"`
	FunctionalObjectives []functionalObjectiveNode `json:"functional_objectives"`
}

type functionalObjectiveNode struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Formula    string          `json:"formula"`
	Progress   progressBody    `json:"progress"`
	Status     string          `json:"status"`
	KeyResults []keyResultNode `json:"key_results"`
}

type keyResultNode struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Formula         string          `json:"formula"`
	Weight          int             `json:"weight"`
	Progress        progressBody    `json:"progress"`
	Status          string          `json:"status"`
	IndicatorStatus string          `json:"indicator_status"`
	Indicators      []indicatorNode `json:"indicators"`
}

type indicatorNode struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Unit         string       `json:"unit"`
	Weight       int          `json:"weight"`
	CurrentValue *float64     `json:"current_value"`
	TargetValue  *float64     `json:"target_value"`
	FeatureIDs   []int64      `json:"feature_ids"`
	Progress     progressBody `json:"progress"`
	Status       string       `json:"status"`
}

type breakdownResponse struct {
	Green         int     `json:"green"`
	Amber         int     `json:"amber"`
	Red           int     `json:"red"`
	NotSet        int     `json:"not_set"`
	Total         int     `json:"total"`
	CompletionPct float64 `json:"completion_pct"`
}

type indicatorBody struct {
	ID           int64        `json:"id"`
	KeyResultID  int64        `json:"key_result_id"`
	Name         string       `json:"name"`
	Unit         string       `json:"unit"`
	Weight       int          `json:"weight"`
	CurrentValue *float64     `json:"current_value"`
	TargetValue  *float64     `json:"target_value"`
	Progress     progressBody `json:"progress"`
	Status       string       `json:"status"`
}

type scoreBody struct {
	ID          int64     `json:"id"`
	IndicatorID int64     `json:"indicator_id"`
	PeriodID    int64     `json:"period_id"`
	CustomerID  *int64    `json:"customer_id,omitempty"`
	Value       float64   `json:"value"`
	Note        string    `json:"note,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type scoresResponse struct {
	Items []scoreBody `json:"items"`
}

type formulaResultBody struct {
	Formula    string `json:"formula"`
	Kind       string `json:"kind"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

type thresholdsBody struct {
	GreenMin float64 `json:"green_min"`
	AmberMin float64 `json:"amber_min"`
}

type customerInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type customersResponse struct {
	Items []customerInfo `json:"items"`
}

type complianceResponse struct {
	Customer customerInfo `json:"customer"`
	Period   periodInfo   `json:"period"`
	Expected int          `json:"expected"`
	Filled   int          `json:"filled"`
	Status   string       `json:"status"`
}

type featureInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type featuresResponse struct {
	Items []featureInfo `json:"items"`
}

type periodInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StartsOn string `json:"starts_on"`
	EndsOn   string `json:"ends_on"`
}

type periodsResponse struct {
	Items []periodInfo `json:"items"`
}

type activityItem struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

type activityResponse struct {
	Items []activityItem `json:"items"`
}

func mapProgress(p rollup.Progress) progressBody {
	if !p.Set {
		return progressBody{}
	}
	value := p.Value
	return progressBody{Value: &value, Bar: rollup.ClampPercent(p.Value)}
}

func mapOverview(tree rollup.Tree) overviewResponse {
	items := make([]objectiveNode, 0, len(tree.Objectives))
	for _, obj := range tree.Objectives {
		items = append(items, mapObjectiveNode(obj))
	}
	return overviewResponse{Items: items}
}

func mapObjectiveNode(obj rollup.OrgObjectiveNode) objectiveNode {
	departments := make([]departmentNode, 0, len(obj.Departments))
	for _, dept := range obj.Departments {
		departments = append(departments, mapDepartmentNode(dept))
	}
	return objectiveNode{
		ID:             obj.ID,
		Name:           obj.Name,
		Color:          obj.Color,
		Classification: string(obj.Classification),
		Progress:       mapProgress(obj.Progress),
		Status:         string(obj.Status),
		Departments:    departments,
	}
}

func mapDepartmentNode(dept rollup.DepartmentNode) departmentNode {
	fos := make([]functionalObjectiveNode, 0, len(dept.FunctionalObjectives))
	for _, fo := range dept.FunctionalObjectives {
		fos = append(fos, mapFunctionalObjectiveNode(fo))
	}
	return departmentNode{
		ID:                   dept.ID,
		Name:                 dept.Name,
		Color:                dept.Color,
		Progress:             mapProgress(dept.Progress),
		Status:               string(dept.Status),
		FunctionalObjectives: fos,
	}
}

func mapFunctionalObjectiveNode(fo rollup.FunctionalObjectiveNode) functionalObjectiveNode {
	krs := make([]keyResultNode, 0, len(fo.KeyResults))
	for _, kr := range fo.KeyResults {
		krs = append(krs, mapKeyResultNode(kr))
	}
	return functionalObjectiveNode{
		ID:         fo.ID,
		Name:       fo.Name,
		Formula:    fo.Formula,
		Progress:   mapProgress(fo.Progress),
		Status:     string(fo.Status),
		KeyResults: krs,
	}
}

func mapKeyResultNode(kr rollup.KeyResultNode) keyResultNode {
	indicators := make([]indicatorNode, 0, len(kr.Indicators))
	for _, ind := range kr.Indicators {
		indicators = append(indicators, indicatorNode{
			ID:           ind.ID,
			Name:         ind.Name,
			Unit:         ind.Unit,
			Weight:       ind.Weight,
			CurrentValue: ind.CurrentValue,
			TargetValue:  ind.TargetValue,
			FeatureIDs:   ind.FeatureIDs,
			Progress:     mapProgress(ind.Progress),
			Status:       string(ind.Status),
		})
	}
	return keyResultNode{
		ID:              kr.ID,
		Name:            kr.Name,
		Formula:         kr.Formula,
		Weight:          kr.Weight,
		Progress:        mapProgress(kr.Progress),
		Status:          string(kr.Status),
		IndicatorStatus: string(kr.IndicatorStatus),
		Indicators:      indicators,
	}
}

func mapBreakdown(b rollup.Breakdown) breakdownResponse {
	return breakdownResponse{
		Green:         b.Green,
		Amber:         b.Amber,
		Red:           b.Red,
		NotSet:        b.NotSet,
		Total:         b.Total(),
		CompletionPct: b.CompletionPct(),
	}
}

func mapIndicator(ind domain.Indicator, thresholds domain.Thresholds) indicatorBody {
	progress := rollup.IndicatorProgress(ind)
	return indicatorBody{
		ID:           ind.ID,
		KeyResultID:  ind.KeyResultID,
		Name:         ind.Name,
		Unit:         ind.Unit,
		Weight:       ind.Weight,
		CurrentValue: ind.CurrentValue,
		TargetValue:  ind.TargetValue,
		Progress:     mapProgress(progress),
		Status:       string(rollup.StatusOf(progress, thresholds)),
	}
}

func mapScore(score domain.Score) scoreBody {
	return scoreBody{
		ID:          score.ID,
		IndicatorID: score.IndicatorID,
		PeriodID:    score.PeriodID,
		CustomerID:  score.CustomerID,
		Value:       score.Value,
		Note:        score.Note,
		RecordedAt:  score.RecordedAt,
	}
}

func mapFormulaResult(result service.FormulaResult) formulaResultBody {
	return formulaResultBody{
		Formula:    result.Formula,
		Kind:       string(result.Kind),
		Valid:      result.Valid,
		Diagnostic: result.Diagnostic,
	}
}

func mapPeriodInfo(period domain.Period) periodInfo {
	return periodInfo{
		ID:       period.ID,
		Name:     period.Name,
		StartsOn: period.StartsOn.Format("2006-01-02"),
		EndsOn:   period.EndsOn.Format("2006-01-02"),
	}
}

func mapCompliance(report service.CustomerCompliance) complianceResponse {
	return complianceResponse{
		Customer: customerInfo{ID: report.Customer.ID, Name: report.Customer.Name},
		Period:   mapPeriodInfo(report.Period),
		Expected: report.Expected,
		Filled:   report.Filled,
		Status:   string(report.Status),
	}
}
