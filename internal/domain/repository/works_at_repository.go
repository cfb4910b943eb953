package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type WorksAtRepository interface {
	Create(ctx context.Context, q database.Querier, worksAt *entity.WorksAt) error
	FindByPhysician(ctx context.Context, q database.Querier, physicianID int64) ([]entity.WorksAt, error)
}
