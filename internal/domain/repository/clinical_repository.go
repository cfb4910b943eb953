package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type HealthReportRepository interface {
	Create(ctx context.Context, q database.Querier, report *entity.HealthReport) error
	FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.HealthReport, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, q database.Querier, prescription *entity.Prescription) error
	FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.Prescription, error)
}

type MedicalHistoryRepository interface {
	Create(ctx context.Context, q database.Querier, history *entity.MedicalHistory) error
	FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.MedicalHistory, error)
	Update(ctx context.Context, q database.Querier, id int64, update entity.MedicalHistoryUpdate) (bool, error)
}
