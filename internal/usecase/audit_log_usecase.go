package usecase

import (
	"context"

	"healthsystem/internal/converter"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogUsecase interface {
	// GetMyActivity lists the caller's most recent audit entries.
	GetMyActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	caller := identity.FromContext(ctx)
	if !caller.Authenticated {
		return nil, ErrNotAuthenticated
	}
	if limit < 1 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.FindByUser(ctx, db, caller.UserID, limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs for user %d: %+v", caller.UserID, err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
