package rollup

import (
	"kpiboard/internal/domain"
)

// Filter selects which indicator leaves survive a Reduce. Zero values mean
// no constraint. DepartmentIDs is an allowlist applied at the department
// level; role scoping resolves a user's access list into it before the
// call. Customer filters are resolved to the customer's feature set, and
// period filters to the set of indicators scored in the period, by the
// caller.
type Filter struct {
	Status        domain.RAGStatus
	FeatureIDs    []int64
	DepartmentIDs []int64
	IndicatorIDs  []int64
}

func (f Filter) keepIndicator(ind IndicatorNode, features, indicators map[int64]bool) bool {
	if f.Status != "" && ind.Status != f.Status {
		return false
	}
	if len(indicators) > 0 && !indicators[ind.ID] {
		return false
	}
	if len(features) > 0 {
		linked := false
		for _, id := range ind.FeatureIDs {
			if features[id] {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

// Reduce prunes a tree to the branches that keep at least one surviving
// leaf and recomputes every ancestor aggregate from the pruned children
// using each node's own formula. Percentages shown under an active filter
// are therefore the filtered aggregates, not the global ones. The input
// tree is not modified.
func (e *Engine) Reduce(tree Tree, f Filter, t domain.Thresholds) Tree {
	features := make(map[int64]bool, len(f.FeatureIDs))
	for _, id := range f.FeatureIDs {
		features[id] = true
	}
	departments := make(map[int64]bool, len(f.DepartmentIDs))
	for _, id := range f.DepartmentIDs {
		departments[id] = true
	}
	indicators := make(map[int64]bool, len(f.IndicatorIDs))
	for _, id := range f.IndicatorIDs {
		indicators[id] = true
	}

	objectives := make([]OrgObjectiveNode, 0, len(tree.Objectives))
	for _, obj := range tree.Objectives {
		depts := make([]DepartmentNode, 0, len(obj.Departments))
		for _, dept := range obj.Departments {
			if len(departments) > 0 && !departments[dept.ID] {
				continue
			}
			fos := make([]FunctionalObjectiveNode, 0, len(dept.FunctionalObjectives))
			for _, fo := range dept.FunctionalObjectives {
				krs := make([]KeyResultNode, 0, len(fo.KeyResults))
				for _, kr := range fo.KeyResults {
					kept := make([]IndicatorNode, 0, len(kr.Indicators))
					for _, ind := range kr.Indicators {
						if f.keepIndicator(ind, features, indicators) {
							kept = append(kept, ind)
						}
					}
					if len(kept) == 0 {
						continue
					}
					krs = append(krs, e.assembleKeyResult(kr.ID, kr.Name, kr.Formula, kr.Weight, kept, t))
				}
				if len(krs) == 0 {
					continue
				}
				fos = append(fos, e.assembleFunctionalObjective(fo.ID, fo.Name, fo.Formula, krs, t))
			}
			if len(fos) == 0 {
				continue
			}
			depts = append(depts, e.assembleDepartment(dept.ID, dept.Name, dept.Color, fos, t))
		}
		if len(depts) == 0 {
			continue
		}
		objectives = append(objectives, e.assembleObjective(domain.OrgObjective{
			ID:             obj.ID,
			Name:           obj.Name,
			Color:          obj.Color,
			Classification: obj.Classification,
		}, depts, t))
	}
	return Tree{Objectives: objectives}
}
