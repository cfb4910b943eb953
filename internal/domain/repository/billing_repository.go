package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type BillingRepository interface {
	Create(ctx context.Context, q database.Querier, bill *entity.Billing) error
	FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.Billing, error)
	FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Billing, error)
	MarkPaid(ctx context.Context, q database.Querier, id int64) (bool, error)
}
