package usecase

import (
	"context"

	"healthsystem/internal/converter"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = apperror.NotFound("Patient not found")

type PatientUsecase interface {
	GetAllPatients(ctx context.Context) ([]entity.Patient, error)
	GetPatient(ctx context.Context, id int64) (*entity.Patient, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.CreatedResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) ([]entity.Patient, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}
	return patients, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient := converter.CreatePatientRequestToEntity(req)
	if err := u.patientRepo.Create(ctx, db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: patient.ID}, nil
}
