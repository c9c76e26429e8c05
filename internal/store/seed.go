package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"kpiboard/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Periods    []seedPeriod    `yaml:"periods"`
	Objectives []seedObjective `yaml:"objectives"`
	Customers  []seedCustomer  `yaml:"customers"`
	Scores     []seedScore     `yaml:"scores"`
}

type seedPeriod struct {
	Name     string `yaml:"name"`
	StartsOn string `yaml:"starts_on"`
	EndsOn   string `yaml:"ends_on"`
}

type seedObjective struct {
	Name           string           `yaml:"name"`
	Color          string           `yaml:"color"`
	Classification string           `yaml:"classification"`
	Departments    []seedDepartment `yaml:"departments"`
}

type seedDepartment struct {
	Name                 string                    `yaml:"name"`
	Color                string                    `yaml:"color"`
	FunctionalObjectives []seedFunctionalObjective `yaml:"functional_objectives"`
}

type seedFunctionalObjective struct {
	Name       string          `yaml:"name"`
	Formula    string          `yaml:"formula"`
	KeyResults []seedKeyResult `yaml:"key_results"`
}

type seedKeyResult struct {
	Name       string          `yaml:"name"`
	Formula    string          `yaml:"formula"`
	Weight     int             `yaml:"weight"`
	Indicators []seedIndicator `yaml:"indicators"`
}

type seedIndicator struct {
	Name     string   `yaml:"name"`
	Unit     string   `yaml:"unit"`
	Weight   int      `yaml:"weight"`
	Current  *float64 `yaml:"current"`
	Target   *float64 `yaml:"target"`
	Features []string `yaml:"features"`
}

type seedCustomer struct {
	Name     string   `yaml:"name"`
	Features []string `yaml:"features"`
}

type seedScore struct {
	Indicator string  `yaml:"indicator"`
	Period    string  `yaml:"period"`
	Customer  string  `yaml:"customer"`
	Value     float64 `yaml:"value"`
	Note      string  `yaml:"note"`
}

// SeedDemo loads the embedded demo dataset. It is a no-op when the database
// already holds org objectives, so passing the seed flag on every start is
// harmless.
func (s *Store) SeedDemo(ctx context.Context) error {
	var existing int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM org_objectives`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	periodIDs := make(map[string]int64, len(file.Periods))
	for _, p := range file.Periods {
		startsOn, err := time.Parse("2006-01-02", p.StartsOn)
		if err != nil {
			return fmt.Errorf("seed period %q: %w", p.Name, err)
		}
		endsOn, err := time.Parse("2006-01-02", p.EndsOn)
		if err != nil {
			return fmt.Errorf("seed period %q: %w", p.Name, err)
		}
		id, err := s.CreatePeriod(ctx, PeriodInput{Name: p.Name, StartsOn: startsOn, EndsOn: endsOn})
		if err != nil {
			return err
		}
		periodIDs[p.Name] = id
	}

	featureIDs := make(map[string]int64)
	ensureFeature := func(name string) (int64, error) {
		if id, ok := featureIDs[name]; ok {
			return id, nil
		}
		id, err := s.CreateFeature(ctx, name)
		if err != nil {
			return 0, err
		}
		featureIDs[name] = id
		return id, nil
	}

	indicatorIDs := make(map[string]int64)
	for _, obj := range file.Objectives {
		objID, err := s.CreateOrgObjective(ctx, obj.Name, obj.Color, domain.Classification(obj.Classification))
		if err != nil {
			return err
		}
		for _, dept := range obj.Departments {
			deptID, err := s.CreateDepartment(ctx, objID, dept.Name, dept.Color)
			if err != nil {
				return err
			}
			for _, fo := range dept.FunctionalObjectives {
				foID, err := s.CreateFunctionalObjective(ctx, deptID, fo.Name, fo.Formula)
				if err != nil {
					return err
				}
				for _, kr := range fo.KeyResults {
					krID, err := s.CreateKeyResult(ctx, foID, kr.Name, kr.Formula, kr.Weight)
					if err != nil {
						return err
					}
					for _, ind := range kr.Indicators {
						indID, err := s.CreateIndicator(ctx, IndicatorInput{
							KeyResultID:  krID,
							Name:         ind.Name,
							Unit:         ind.Unit,
							Weight:       ind.Weight,
							CurrentValue: ind.Current,
							TargetValue:  ind.Target,
						})
						if err != nil {
							return err
						}
						indicatorIDs[ind.Name] = indID
						for _, feature := range ind.Features {
							featureID, err := ensureFeature(feature)
							if err != nil {
								return err
							}
							if err := s.LinkIndicatorFeature(ctx, indID, featureID); err != nil {
								return err
							}
						}
					}
				}
			}
		}
	}

	customerIDs := make(map[string]int64, len(file.Customers))
	for _, c := range file.Customers {
		id, err := s.CreateCustomer(ctx, c.Name)
		if err != nil {
			return err
		}
		customerIDs[c.Name] = id
		for _, feature := range c.Features {
			featureID, err := ensureFeature(feature)
			if err != nil {
				return err
			}
			if err := s.AssignCustomerFeature(ctx, id, featureID); err != nil {
				return err
			}
		}
	}

	for _, sc := range file.Scores {
		indID, ok := indicatorIDs[sc.Indicator]
		if !ok {
			return fmt.Errorf("seed score references unknown indicator %q", sc.Indicator)
		}
		periodID, ok := periodIDs[sc.Period]
		if !ok {
			return fmt.Errorf("seed score references unknown period %q", sc.Period)
		}
		input := ScoreInput{IndicatorID: indID, PeriodID: periodID, Value: sc.Value, Note: sc.Note}
		if sc.Customer != "" {
			customerID, ok := customerIDs[sc.Customer]
			if !ok {
				return fmt.Errorf("seed score references unknown customer %q", sc.Customer)
			}
			input.CustomerID = &customerID
		}
		if _, err := s.RecordScore(ctx, input); err != nil {
			return err
		}
	}

	return nil
}
