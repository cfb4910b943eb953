package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type AuditLogRepository interface {
	Create(ctx context.Context, q database.Querier, log *entity.AuditLog) error
	FindByUser(ctx context.Context, q database.Querier, userID int64, limit int) ([]entity.AuditLog, error)
}
