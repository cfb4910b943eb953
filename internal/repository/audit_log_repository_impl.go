package repository

import (
	"context"
	"encoding/json"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, q database.Querier, log *entity.AuditLog) error {
	metadata, err := log.Metadata.Bytes()
	if err != nil {
		return err
	}
	res, err := q.Execute(ctx,
		`INSERT INTO audit_log (user_id, action, metadata) VALUES ($1, $2, $3) RETURNING id`,
		log.UserID, log.Action, metadata)
	if err != nil {
		return err
	}
	log.ID = res.InsertID
	return nil
}

func (r *auditLogRepository) FindByUser(ctx context.Context, q database.Querier, userID int64, limit int) ([]entity.AuditLog, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT id, user_id, action, metadata, created_at
		FROM audit_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}

	logs := make([]entity.AuditLog, 0, len(rows))
	for _, row := range rows {
		entry := entity.AuditLog{
			ID:     row.Int64("id"),
			UserID: row.OptionalInt64("user_id"),
			Action: row.String("action"),
		}
		entry.Metadata = toJSON(row["metadata"])
		if created := row.Time("created_at"); created != nil {
			entry.CreatedAt = *created
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

// toJSON accepts jsonb both as decoded by the driver and as raw bytes.
func toJSON(v any) entity.JSON {
	switch m := v.(type) {
	case map[string]any:
		return entity.JSON(m)
	case []byte:
		var out entity.JSON
		if json.Unmarshal(m, &out) == nil {
			return out
		}
	case string:
		var out entity.JSON
		if json.Unmarshal([]byte(m), &out) == nil {
			return out
		}
	}
	return nil
}
