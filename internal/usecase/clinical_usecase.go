package usecase

import (
	"context"

	"healthsystem/internal/converter"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrHistoryNotFound = apperror.NotFound("Medical history not found")
	ErrNothingToUpdate = apperror.Validation("No fields to update")
)

// ClinicalUsecase covers health reports, prescriptions and medical history.
type ClinicalUsecase interface {
	CreateHealthReport(ctx context.Context, req *dto.CreateHealthReportRequest) (*dto.CreatedResponse, error)
	GetHealthReports(ctx context.Context, patientID int64) ([]entity.HealthReport, error)
	CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatedResponse, error)
	GetPrescriptions(ctx context.Context, patientID int64) ([]entity.Prescription, error)
	CreateMedicalHistory(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.CreatedResponse, error)
	UpdateMedicalHistory(ctx context.Context, req *dto.UpdateMedicalHistoryRequest) error
	GetMedicalHistory(ctx context.Context, patientID int64) ([]entity.MedicalHistory, error)
}

type clinicalUsecase struct {
	log              *logrus.Logger
	reportRepo       repository.HealthReportRepository
	prescriptionRepo repository.PrescriptionRepository
	historyRepo      repository.MedicalHistoryRepository
}

func NewClinicalUsecase(
	log *logrus.Logger,
	reportRepo repository.HealthReportRepository,
	prescriptionRepo repository.PrescriptionRepository,
	historyRepo repository.MedicalHistoryRepository,
) ClinicalUsecase {
	return &clinicalUsecase{
		log:              log,
		reportRepo:       reportRepo,
		prescriptionRepo: prescriptionRepo,
		historyRepo:      historyRepo,
	}
}

func (u *clinicalUsecase) CreateHealthReport(ctx context.Context, req *dto.CreateHealthReportRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	report := converter.HealthReportRequestToEntity(req)
	if err := u.reportRepo.Create(ctx, db, report); err != nil {
		u.log.Warnf("Failed to create health report: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: report.ID}, nil
}

func (u *clinicalUsecase) GetHealthReports(ctx context.Context, patientID int64) ([]entity.HealthReport, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if patientID, err = patientScope(identity.FromContext(ctx), patientID); err != nil {
		return nil, err
	}

	reports, err := u.reportRepo.FindByPatient(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find health reports for patient %d: %+v", patientID, err)
		return nil, err
	}
	return reports, nil
}

func (u *clinicalUsecase) CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	prescription := converter.PrescriptionRequestToEntity(req)
	if err := u.prescriptionRepo.Create(ctx, db, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: prescription.ID}, nil
}

func (u *clinicalUsecase) GetPrescriptions(ctx context.Context, patientID int64) ([]entity.Prescription, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if patientID, err = patientScope(identity.FromContext(ctx), patientID); err != nil {
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindByPatient(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for patient %d: %+v", patientID, err)
		return nil, err
	}
	return prescriptions, nil
}

func (u *clinicalUsecase) CreateMedicalHistory(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	history := converter.MedicalHistoryRequestToEntity(req)
	if err := u.historyRepo.Create(ctx, db, history); err != nil {
		u.log.Warnf("Failed to create medical history: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: history.ID}, nil
}

// UpdateMedicalHistory writes only the fields present in the request.
func (u *clinicalUsecase) UpdateMedicalHistory(ctx context.Context, req *dto.UpdateMedicalHistoryRequest) error {
	update := converter.MedicalHistoryUpdateFromRequest(req)
	if update.Empty() {
		return ErrNothingToUpdate
	}

	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return err
	}

	updated, err := u.historyRepo.Update(ctx, db, req.HistoryID, update)
	if err != nil {
		u.log.Warnf("Failed to update medical history %d: %+v", req.HistoryID, err)
		return err
	}
	if !updated {
		return ErrHistoryNotFound
	}
	return nil
}

func (u *clinicalUsecase) GetMedicalHistory(ctx context.Context, patientID int64) ([]entity.MedicalHistory, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if patientID, err = patientScope(identity.FromContext(ctx), patientID); err != nil {
		return nil, err
	}

	history, err := u.historyRepo.FindByPatient(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical history for patient %d: %+v", patientID, err)
		return nil, err
	}
	return history, nil
}
