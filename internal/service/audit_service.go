package service

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

// AuditService writes audit entries through the caller's querier, so an
// entry written inside a transaction commits or rolls back with it.
type AuditService interface {
	LogCreate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error
	LogUpdate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	return s.write(ctx, q, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	return s.write(ctx, q, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue interface{}) error {
	return s.write(ctx, q, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) write(ctx context.Context, q database.Querier, userID *int64, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, q, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
