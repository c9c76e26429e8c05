package rollup

import (
	"kpiboard/internal/domain"
	"kpiboard/internal/formula"
)

// Engine computes roll-up trees. It owns the formula parse cache shared
// across requests; thresholds are per call because admins can edit them at
// runtime.
type Engine struct {
	cache *formula.Cache
}

func NewEngine() *Engine {
	return &Engine{cache: formula.NewCache()}
}

// Tree is one computed aggregation pass over a snapshot. Trees are
// ephemeral: they are rebuilt on every read and never stored.
type Tree struct {
	Objectives []OrgObjectiveNode
}

type OrgObjectiveNode struct {
	ID             int64
	Name           string
	Color          string
	Classification domain.Classification
	Progress       Progress
	Status         domain.RAGStatus
	Departments    []DepartmentNode
}

type DepartmentNode struct {
	ID                   int64
	Name                 string
	Color                string
	Progress             Progress
	Status               domain.RAGStatus
	FunctionalObjectives []FunctionalObjectiveNode
}

type FunctionalObjectiveNode struct {
	ID         int64
	Name       string
	Formula    string
	Progress   Progress
	Status     domain.RAGStatus
	KeyResults []KeyResultNode
}

type KeyResultNode struct {
	ID      int64
	Name    string
	Formula string
	Weight  int
	// Status comes from the blended percentage, IndicatorStatus from the
	// indicator-proportion rule. They are independent and may disagree.
	Progress        Progress
	Status          domain.RAGStatus
	IndicatorStatus domain.RAGStatus
	Indicators      []IndicatorNode
}

type IndicatorNode struct {
	ID           int64
	Name         string
	Unit         string
	Weight       int
	CurrentValue *float64
	TargetValue  *float64
	FeatureIDs   []int64
	Progress     Progress
	Status       domain.RAGStatus
}

// BuildInput is the immutable snapshot one aggregation pass works over,
// fetched once by the caller. Slice order is preserved, so stores should
// list entities in a stable order.
type BuildInput struct {
	Objectives           []domain.OrgObjective
	Departments          []domain.Department
	FunctionalObjectives []domain.FunctionalObjective
	KeyResults           []domain.KeyResult
	Indicators           []domain.Indicator
	IndicatorFeatures    []domain.IndicatorFeature
}

// Build computes the full roll-up tree bottom-up: indicator ratios, then
// key results with their own formulas, then functional objectives with
// theirs, then departments and org objectives as plain averages (no formula
// slot exists at those levels).
func (e *Engine) Build(in BuildInput, t domain.Thresholds) Tree {
	featureIDs := make(map[int64][]int64, len(in.IndicatorFeatures))
	for _, link := range in.IndicatorFeatures {
		featureIDs[link.IndicatorID] = append(featureIDs[link.IndicatorID], link.FeatureID)
	}
	indicatorsByKR := make(map[int64][]domain.Indicator, len(in.KeyResults))
	for _, ind := range in.Indicators {
		indicatorsByKR[ind.KeyResultID] = append(indicatorsByKR[ind.KeyResultID], ind)
	}
	krsByFO := make(map[int64][]domain.KeyResult, len(in.FunctionalObjectives))
	for _, kr := range in.KeyResults {
		krsByFO[kr.FunctionalObjectiveID] = append(krsByFO[kr.FunctionalObjectiveID], kr)
	}
	fosByDepartment := make(map[int64][]domain.FunctionalObjective, len(in.Departments))
	for _, fo := range in.FunctionalObjectives {
		fosByDepartment[fo.DepartmentID] = append(fosByDepartment[fo.DepartmentID], fo)
	}
	departmentsByObjective := make(map[int64][]domain.Department, len(in.Objectives))
	for _, dept := range in.Departments {
		departmentsByObjective[dept.OrgObjectiveID] = append(departmentsByObjective[dept.OrgObjectiveID], dept)
	}

	objectives := make([]OrgObjectiveNode, 0, len(in.Objectives))
	for _, obj := range in.Objectives {
		departments := make([]DepartmentNode, 0, len(departmentsByObjective[obj.ID]))
		for _, dept := range departmentsByObjective[obj.ID] {
			fos := make([]FunctionalObjectiveNode, 0, len(fosByDepartment[dept.ID]))
			for _, fo := range fosByDepartment[dept.ID] {
				krs := make([]KeyResultNode, 0, len(krsByFO[fo.ID]))
				for _, kr := range krsByFO[fo.ID] {
					indicators := make([]IndicatorNode, 0, len(indicatorsByKR[kr.ID]))
					for _, ind := range indicatorsByKR[kr.ID] {
						indicators = append(indicators, e.buildIndicator(ind, featureIDs[ind.ID], t))
					}
					krs = append(krs, e.assembleKeyResult(kr.ID, kr.Name, kr.Formula, kr.Weight, indicators, t))
				}
				fos = append(fos, e.assembleFunctionalObjective(fo.ID, fo.Name, fo.Formula, krs, t))
			}
			departments = append(departments, e.assembleDepartment(dept.ID, dept.Name, dept.Color, fos, t))
		}
		objectives = append(objectives, e.assembleObjective(obj, departments, t))
	}
	return Tree{Objectives: objectives}
}

func (e *Engine) buildIndicator(ind domain.Indicator, features []int64, t domain.Thresholds) IndicatorNode {
	progress := IndicatorProgress(ind)
	return IndicatorNode{
		ID:           ind.ID,
		Name:         ind.Name,
		Unit:         ind.Unit,
		Weight:       ind.Weight,
		CurrentValue: ind.CurrentValue,
		TargetValue:  ind.TargetValue,
		FeatureIDs:   features,
		Progress:     progress,
		Status:       StatusOf(progress, t),
	}
}

func (e *Engine) assembleKeyResult(id int64, name, rawFormula string, weight int, indicators []IndicatorNode, t domain.Thresholds) KeyResultNode {
	children := make([]Child, 0, len(indicators))
	statuses := make([]domain.RAGStatus, 0, len(indicators))
	for _, ind := range indicators {
		children = append(children, Child{Name: ind.Name, Weight: ind.Weight, Progress: ind.Progress})
		statuses = append(statuses, ind.Status)
	}
	progress := Aggregate(children, formula.Classify(rawFormula), e.cache)
	return KeyResultNode{
		ID:              id,
		Name:            name,
		Formula:         rawFormula,
		Weight:          weight,
		Progress:        progress,
		Status:          StatusOf(progress, t),
		IndicatorStatus: IndicatorProportionStatus(statuses),
		Indicators:      indicators,
	}
}

func (e *Engine) assembleFunctionalObjective(id int64, name, rawFormula string, krs []KeyResultNode, t domain.Thresholds) FunctionalObjectiveNode {
	children := make([]Child, 0, len(krs))
	for _, kr := range krs {
		children = append(children, Child{Name: kr.Name, Weight: kr.Weight, Progress: kr.Progress})
	}
	progress := Aggregate(children, formula.Classify(rawFormula), e.cache)
	return FunctionalObjectiveNode{
		ID:         id,
		Name:       name,
		Formula:    rawFormula,
		Progress:   progress,
		Status:     StatusOf(progress, t),
		KeyResults: krs,
	}
}

func (e *Engine) assembleDepartment(id int64, name, color string, fos []FunctionalObjectiveNode, t domain.Thresholds) DepartmentNode {
	children := make([]Child, 0, len(fos))
	for _, fo := range fos {
		children = append(children, Child{Name: fo.Name, Progress: fo.Progress})
	}
	progress := Aggregate(children, formula.Strategy{Kind: formula.KindAverage}, nil)
	return DepartmentNode{
		ID:                   id,
		Name:                 name,
		Color:                color,
		Progress:             progress,
		Status:               StatusOf(progress, t),
		FunctionalObjectives: fos,
	}
}

func (e *Engine) assembleObjective(obj domain.OrgObjective, departments []DepartmentNode, t domain.Thresholds) OrgObjectiveNode {
	children := make([]Child, 0, len(departments))
	for _, dept := range departments {
		children = append(children, Child{Name: dept.Name, Progress: dept.Progress})
	}
	progress := Aggregate(children, formula.Strategy{Kind: formula.KindAverage}, nil)
	return OrgObjectiveNode{
		ID:             obj.ID,
		Name:           obj.Name,
		Color:          obj.Color,
		Classification: obj.Classification,
		Progress:       progress,
		Status:         StatusOf(progress, t),
		Departments:    departments,
	}
}
