package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kpiboard/internal/domain"
	"kpiboard/internal/rollup"
	"kpiboard/internal/store"
)

type Store interface {
	ListOrgObjectives(ctx context.Context) ([]domain.OrgObjective, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListFunctionalObjectives(ctx context.Context) ([]domain.FunctionalObjective, error)
	ListKeyResults(ctx context.Context) ([]domain.KeyResult, error)
	ListIndicators(ctx context.Context) ([]domain.Indicator, error)
	ListIndicatorFeatures(ctx context.Context) ([]domain.IndicatorFeature, error)
	GetIndicator(ctx context.Context, id int64) (domain.Indicator, error)
	UpdateIndicatorCurrent(ctx context.Context, id int64, value *float64) error
	UpdateIndicatorTarget(ctx context.Context, id int64, value *float64) error
	RecordScore(ctx context.Context, input store.ScoreInput) (domain.Score, error)
	ListScores(ctx context.Context, filter store.ScoreFilter) ([]domain.Score, error)
	ListScoredIndicatorIDs(ctx context.Context, periodID int64) ([]int64, error)
	SetKeyResultFormula(ctx context.Context, id int64, formula string) error
	SetFunctionalObjectiveFormula(ctx context.Context, id int64, formula string) error
	ListPeriods(ctx context.Context) ([]domain.Period, error)
	GetPeriod(ctx context.Context, periodID int64) (domain.Period, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)
	ListCustomerFeatureIDs(ctx context.Context, customerID int64) ([]int64, error)
	CountCustomerIndicatorLinks(ctx context.Context, customerID int64) (int, error)
	CountCustomerScoredIndicators(ctx context.Context, customerID, periodID int64) (int, error)
	ListFeatures(ctx context.Context) ([]domain.Feature, error)
	GetThresholds(ctx context.Context) (domain.Thresholds, error)
	SaveThresholds(ctx context.Context, t domain.Thresholds) error
	AppendActivity(ctx context.Context, input store.ActivityInput) error
	ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type Service struct {
	store  Store
	engine *rollup.Engine
}

func New(st Store) *Service {
	return &Service{store: st, engine: rollup.NewEngine()}
}

// OverviewFilter narrows the overview tree. Zero values mean no constraint;
// CustomerID is resolved to the customer's feature set before reduction.
type OverviewFilter struct {
	Status        domain.RAGStatus
	CustomerID    int64
	FeatureID     int64
	DepartmentIDs []int64
}

func (f OverviewFilter) empty() bool {
	return f.Status == "" && f.CustomerID == 0 && f.FeatureID == 0 && len(f.DepartmentIDs) == 0
}

// Overview builds the full roll-up tree over a fresh snapshot.
func (s *Service) Overview(ctx context.Context) (rollup.Tree, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		return rollup.Tree{}, err
	}
	return s.engine.Build(in, s.thresholds(ctx)), nil
}

func (s *Service) FilteredOverview(ctx context.Context, f OverviewFilter) (rollup.Tree, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		return rollup.Tree{}, err
	}
	t := s.thresholds(ctx)
	tree := s.engine.Build(in, t)
	if f.empty() {
		return tree, nil
	}

	filter := rollup.Filter{
		Status:        f.Status,
		DepartmentIDs: f.DepartmentIDs,
	}
	if f.FeatureID != 0 {
		filter.FeatureIDs = append(filter.FeatureIDs, f.FeatureID)
	}
	if f.CustomerID != 0 {
		if _, err := s.store.GetCustomer(ctx, f.CustomerID); err != nil {
			return rollup.Tree{}, err
		}
		featureIDs, err := s.store.ListCustomerFeatureIDs(ctx, f.CustomerID)
		if err != nil {
			return rollup.Tree{}, err
		}
		if len(featureIDs) == 0 {
			// A customer without features matches no leaves.
			return rollup.Tree{}, nil
		}
		filter.FeatureIDs = append(filter.FeatureIDs, featureIDs...)
	}
	return s.engine.Reduce(tree, filter, t), nil
}

// BreakdownScope restricts the status tally. Zero values mean global.
type BreakdownScope struct {
	DepartmentID int64
	CustomerID   int64
	FeatureID    int64
	PeriodID     int64
}

func (s *Service) Breakdown(ctx context.Context, scope BreakdownScope) (rollup.Breakdown, error) {
	f := OverviewFilter{CustomerID: scope.CustomerID, FeatureID: scope.FeatureID}
	if scope.DepartmentID != 0 {
		f.DepartmentIDs = []int64{scope.DepartmentID}
	}
	tree, err := s.FilteredOverview(ctx, f)
	if err != nil {
		return rollup.Breakdown{}, err
	}
	if scope.PeriodID != 0 {
		if _, err := s.store.GetPeriod(ctx, scope.PeriodID); err != nil {
			return rollup.Breakdown{}, err
		}
		scored, err := s.store.ListScoredIndicatorIDs(ctx, scope.PeriodID)
		if err != nil {
			return rollup.Breakdown{}, err
		}
		if len(scored) == 0 {
			return rollup.Breakdown{}, nil
		}
		tree = s.engine.Reduce(tree, rollup.Filter{IndicatorIDs: scored}, s.thresholds(ctx))
	}
	return tree.Breakdown(), nil
}

// CustomerCompliance reports how much of the expected score sheet one
// customer has filled in for a period.
type CustomerCompliance struct {
	Customer domain.Customer
	Period   domain.Period
	Expected int
	Filled   int
	Status   domain.Compliance
}

func (s *Service) CustomerCompliance(ctx context.Context, customerID, periodID int64) (CustomerCompliance, error) {
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		return CustomerCompliance{}, err
	}
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return CustomerCompliance{}, err
	}
	expected, err := s.store.CountCustomerIndicatorLinks(ctx, customerID)
	if err != nil {
		return CustomerCompliance{}, err
	}
	filled, err := s.store.CountCustomerScoredIndicators(ctx, customerID, periodID)
	if err != nil {
		return CustomerCompliance{}, err
	}
	return CustomerCompliance{
		Customer: customer,
		Period:   period,
		Expected: expected,
		Filled:   filled,
		Status:   rollup.ComplianceStatus(filled, expected),
	}, nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	return s.store.ListPeriods(ctx)
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *Service) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	return s.store.ListFeatures(ctx)
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	return s.store.ListRecentActivity(ctx, limit)
}

// Thresholds returns the stored RAG bands, or the defaults when no row was
// ever saved.
func (s *Service) Thresholds(ctx context.Context) domain.Thresholds {
	return s.thresholds(ctx)
}

func (s *Service) snapshot(ctx context.Context) (rollup.BuildInput, error) {
	var in rollup.BuildInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Objectives, err = s.store.ListOrgObjectives(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Departments, err = s.store.ListDepartments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.FunctionalObjectives, err = s.store.ListFunctionalObjectives(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.KeyResults, err = s.store.ListKeyResults(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Indicators, err = s.store.ListIndicators(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.IndicatorFeatures, err = s.store.ListIndicatorFeatures(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return rollup.BuildInput{}, err
	}
	return in, nil
}

func (s *Service) thresholds(ctx context.Context) domain.Thresholds {
	t, err := s.store.GetThresholds(ctx)
	if err != nil {
		return rollup.DefaultThresholds()
	}
	return t
}
