package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type UserRepository interface {
	Create(ctx context.Context, q database.Querier, user *entity.User) error
	FindByEmail(ctx context.Context, q database.Querier, email string) (*entity.User, error)
	FindByID(ctx context.Context, q database.Querier, id int64) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, q database.Querier, id int64) error
}
