package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kpiboard/internal/domain"
	"kpiboard/internal/formula"
	"kpiboard/internal/store"
)

// UpdateIndicatorCurrent sets or clears the measured value and returns the
// refreshed indicator.
func (s *Service) UpdateIndicatorCurrent(ctx context.Context, id int64, value *float64) (domain.Indicator, error) {
	if err := s.store.UpdateIndicatorCurrent(ctx, id, value); err != nil {
		return domain.Indicator{}, err
	}
	ind, err := s.store.GetIndicator(ctx, id)
	if err != nil {
		return domain.Indicator{}, err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "indicator",
		EntityID:   id,
		Action:     "current_updated",
		Detail:     fmt.Sprintf("%s current %s", ind.Name, describeValue(value)),
	})
	return ind, nil
}

func (s *Service) UpdateIndicatorTarget(ctx context.Context, id int64, value *float64) (domain.Indicator, error) {
	if err := s.store.UpdateIndicatorTarget(ctx, id, value); err != nil {
		return domain.Indicator{}, err
	}
	ind, err := s.store.GetIndicator(ctx, id)
	if err != nil {
		return domain.Indicator{}, err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "indicator",
		EntityID:   id,
		Action:     "target_updated",
		Detail:     fmt.Sprintf("%s target %s", ind.Name, describeValue(value)),
	})
	return ind, nil
}

// RecordScore validates the referenced rows, writes the score, and lets the
// store move the indicator's current value along with it.
func (s *Service) RecordScore(ctx context.Context, input store.ScoreInput) (domain.Score, error) {
	ind, err := s.store.GetIndicator(ctx, input.IndicatorID)
	if err != nil {
		return domain.Score{}, err
	}
	if _, err := s.store.GetPeriod(ctx, input.PeriodID); err != nil {
		return domain.Score{}, err
	}
	if input.CustomerID != nil {
		if _, err := s.store.GetCustomer(ctx, *input.CustomerID); err != nil {
			return domain.Score{}, err
		}
	}
	score, err := s.store.RecordScore(ctx, input)
	if err != nil {
		return domain.Score{}, err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "indicator",
		EntityID:   input.IndicatorID,
		Action:     "score_recorded",
		Detail:     fmt.Sprintf("%s scored %s", ind.Name, strconv.FormatFloat(input.Value, 'f', -1, 64)),
	})
	return score, nil
}

// ListIndicatorScores returns the score history for one indicator, newest
// first, optionally narrowed to a period or customer.
func (s *Service) ListIndicatorScores(ctx context.Context, indicatorID, periodID, customerID int64) ([]domain.Score, error) {
	if _, err := s.store.GetIndicator(ctx, indicatorID); err != nil {
		return nil, err
	}
	return s.store.ListScores(ctx, store.ScoreFilter{
		IndicatorID: indicatorID,
		PeriodID:    periodID,
		CustomerID:  customerID,
	})
}

// FormulaResult reports how a formula string will behave: its classified
// strategy and, for expressions, whether it parses. Invalid text is still
// accepted because aggregation falls back to a plain average.
type FormulaResult struct {
	Formula    string
	Kind       formula.Kind
	Valid      bool
	Diagnostic string
}

func (s *Service) ValidateFormula(raw string) FormulaResult {
	trimmed := strings.TrimSpace(raw)
	strategy := formula.Classify(trimmed)
	result := FormulaResult{Formula: trimmed, Kind: strategy.Kind, Valid: true}
	if strategy.Kind == formula.KindExpression {
		if _, err := formula.Parse(strategy.Expr); err != nil {
			result.Valid = false
			result.Diagnostic = err.Error()
		}
	}
	return result
}

func (s *Service) SetKeyResultFormula(ctx context.Context, id int64, raw string) (FormulaResult, error) {
	result := s.ValidateFormula(raw)
	if err := s.store.SetKeyResultFormula(ctx, id, result.Formula); err != nil {
		return FormulaResult{}, err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "key_result",
		EntityID:   id,
		Action:     "formula_updated",
		Detail:     describeFormula(result),
	})
	return result, nil
}

func (s *Service) SetFunctionalObjectiveFormula(ctx context.Context, id int64, raw string) (FormulaResult, error) {
	result := s.ValidateFormula(raw)
	if err := s.store.SetFunctionalObjectiveFormula(ctx, id, result.Formula); err != nil {
		return FormulaResult{}, err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "functional_objective",
		EntityID:   id,
		Action:     "formula_updated",
		Detail:     describeFormula(result),
	})
	return result, nil
}

func (s *Service) SaveThresholds(ctx context.Context, t domain.Thresholds) error {
	if err := s.store.SaveThresholds(ctx, t); err != nil {
		return err
	}
	_ = s.store.AppendActivity(ctx, store.ActivityInput{
		EntityType: "thresholds",
		EntityID:   1,
		Action:     "thresholds_updated",
		Detail:     fmt.Sprintf("green >= %g, amber >= %g", t.GreenMin, t.AmberMin),
	})
	return nil
}

func describeValue(v *float64) string {
	if v == nil {
		return "cleared"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func describeFormula(result FormulaResult) string {
	if result.Formula == "" {
		return "formula cleared"
	}
	if !result.Valid {
		return fmt.Sprintf("formula %q (invalid, averages apply)", result.Formula)
	}
	return fmt.Sprintf("formula %q", result.Formula)
}
