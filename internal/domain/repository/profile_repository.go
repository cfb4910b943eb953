package repository

import (
	"context"

	"healthsystem/internal/infrastructure/database"
)

// ProfileRepository loads the domain row an account references.
type ProfileRepository interface {
	FindPatientProfile(ctx context.Context, q database.Querier, patientID int64) (database.Row, error)
	FindPhysicianProfile(ctx context.Context, q database.Querier, physicianID int64) (database.Row, error)
}

// DatasetRepository serves the read-only listings and the generic column
// filter. Results are returned as raw rows.
type DatasetRepository interface {
	Filter(ctx context.Context, q database.Querier, table, column, value string) ([]database.Row, error)
	List(ctx context.Context, q database.Querier, dataset string) ([]database.Row, error)
}
