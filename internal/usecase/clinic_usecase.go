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

var (
	ErrClinicAlreadyExists  = apperror.Conflict("Clinic already exists at this address", nil)
	ErrWorksAtAlreadyExists = apperror.Conflict("Physician already works at this clinic", nil)
	ErrMissingPhysician     = apperror.Validation("Missing required parameter: physician_id")
)

type ClinicUsecase interface {
	GetAllClinics(ctx context.Context) ([]entity.Clinic, error)
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.CreatedResponse, error)
	GetWorksAt(ctx context.Context, physicianID int64) ([]entity.WorksAt, error)
	CreateWorksAt(ctx context.Context, req *dto.CreateWorksAtRequest) error
}

type clinicUsecase struct {
	log         *logrus.Logger
	clinicRepo  repository.ClinicRepository
	worksAtRepo repository.WorksAtRepository
}

func NewClinicUsecase(
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	worksAtRepo repository.WorksAtRepository,
) ClinicUsecase {
	return &clinicUsecase{
		log:         log,
		clinicRepo:  clinicRepo,
		worksAtRepo: worksAtRepo,
	}
}

func (u *clinicUsecase) GetAllClinics(ctx context.Context) ([]entity.Clinic, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	clinics, err := u.clinicRepo.FindAll(ctx, db)
	if err != nil {
		u.log.Warnf("Failed to find all clinics: %+v", err)
		return nil, err
	}
	return clinics, nil
}

func (u *clinicUsecase) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	clinic := &entity.Clinic{Name: req.Name, Address: req.Address}
	if err := u.clinicRepo.Create(ctx, db, clinic); err != nil {
		if database.IsUniqueViolation(err, "clinic_name_address_key") {
			return nil, ErrClinicAlreadyExists
		}
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: clinic.ID}, nil
}

func (u *clinicUsecase) GetWorksAt(ctx context.Context, physicianID int64) ([]entity.WorksAt, error) {
	if physicianID <= 0 {
		return nil, ErrMissingPhysician
	}

	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	works, err := u.worksAtRepo.FindByPhysician(ctx, db, physicianID)
	if err != nil {
		u.log.Warnf("Failed to find clinics for physician %d: %+v", physicianID, err)
		return nil, err
	}
	return works, nil
}

func (u *clinicUsecase) CreateWorksAt(ctx context.Context, req *dto.CreateWorksAtRequest) error {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return err
	}

	if err := u.worksAtRepo.Create(ctx, db, converter.WorksAtRequestToEntity(req)); err != nil {
		if database.IsUniqueViolation(err, "works_at_pkey") {
			return ErrWorksAtAlreadyExists
		}
		u.log.Warnf("Failed to create works_at: %+v", err)
		return err
	}
	return nil
}
