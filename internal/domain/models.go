package domain

import "time"

type RAGStatus string

const (
	RAGGreen  RAGStatus = "green"
	RAGAmber  RAGStatus = "amber"
	RAGRed    RAGStatus = "red"
	RAGNotSet RAGStatus = "not_set"
)

type Compliance string

const (
	ComplianceComplete Compliance = "complete"
	CompliancePartial  Compliance = "partial"
	CompliancePending  Compliance = "pending"
)

type Classification string

const (
	ClassificationStrategic   Classification = "STRATEGIC"
	ClassificationOperational Classification = "OPERATIONAL"
	ClassificationCompliance  Classification = "COMPLIANCE"
)

type OrgObjective struct {
	ID             int64
	Name           string
	Color          string
	Classification Classification
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Department struct {
	ID             int64
	OrgObjectiveID int64
	Name           string
	Color          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type FunctionalObjective struct {
	ID           int64
	DepartmentID int64
	Name         string
	Formula      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type KeyResult struct {
	ID                    int64
	FunctionalObjectiveID int64
	Name                  string
	Formula               string
	Weight                int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Indicator carries nullable current and target values. Both pointers
// non-nil and a positive target make the indicator "set"; anything else
// excludes it from aggregation entirely rather than counting as zero.
type Indicator struct {
	ID           int64
	KeyResultID  int64
	Name         string
	Unit         string
	Weight       int
	CurrentValue *float64
	TargetValue  *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Customer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Feature struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IndicatorFeature links an indicator to a feature it measures.
type IndicatorFeature struct {
	IndicatorID int64
	FeatureID   int64
}

// CustomerFeature links a customer to a feature assigned to them.
type CustomerFeature struct {
	CustomerID int64
	FeatureID  int64
}

type Period struct {
	ID        int64
	Name      string
	StartsOn  time.Time
	EndsOn    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Score struct {
	ID          int64
	IndicatorID int64
	PeriodID    int64
	CustomerID  *int64
	Value       float64
	Note        string
	RecordedAt  time.Time
}

// Thresholds is the admin-editable RAG band configuration. A progress at or
// above GreenMin is green, at or above AmberMin is amber, below is red.
type Thresholds struct {
	GreenMin float64
	AmberMin float64
}

type ActivityEntry struct {
	ID         string
	EntityType string
	EntityID   int64
	Action     string
	Detail     string
	CreatedAt  time.Time
}
