package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type PatientRepository interface {
	Create(ctx context.Context, q database.Querier, patient *entity.Patient) error
	FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context, q database.Querier) ([]entity.Patient, error)
}
