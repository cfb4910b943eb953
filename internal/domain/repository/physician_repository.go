package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type PhysicianRepository interface {
	Create(ctx context.Context, q database.Querier, physician *entity.Physician) error
	FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Physician, error)
	FindPage(ctx context.Context, q database.Querier, page entity.Page) ([]entity.PhysicianListing, error)
	Count(ctx context.Context, q database.Querier) (int64, error)
}

type ClinicRepository interface {
	Create(ctx context.Context, q database.Querier, clinic *entity.Clinic) error
	// Upsert returns the id of the clinic with the same name and address,
	// creating it if needed.
	Upsert(ctx context.Context, q database.Querier, clinic *entity.Clinic) error
	FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Clinic, error)
	FindAll(ctx context.Context, q database.Querier) ([]entity.Clinic, error)
}
