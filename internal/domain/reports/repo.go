package reports

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GroupedSeries runs a grouped aggregation built by the service and scans
	// the resulting {label, value} rows.
	GroupedSeries(ctx context.Context, query string, args ...interface{}) ([]ChartPoint, error)

	Overview(ctx context.Context, branchID *uuid.UUID) (*OverviewStats, error)
	BranchStats(ctx context.Context) ([]BranchStat, error)
	DoctorPerformance(ctx context.Context, branchID *uuid.UUID) ([]DoctorStat, error)
	Revenue(ctx context.Context, branchID *uuid.UUID) ([]RevenuePoint, error)
	PatientStats(ctx context.Context, branchID *uuid.UUID) (*PatientStats, error)
	TreatmentStats(ctx context.Context, branchID *uuid.UUID) (*TreatmentStats, error)
}
