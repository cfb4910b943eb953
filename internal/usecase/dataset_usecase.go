package usecase

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingFilter = apperror.Validation("Missing required parameters: table, column, value")
	// The filter reaches across patients, so it is closed to patient callers.
	ErrFilterStaffOnly = apperror.Authorization("Physician or admin access required")
)

type DatasetUsecase interface {
	Filter(ctx context.Context, table, column, value string) ([]database.Row, error)
	List(ctx context.Context, dataset string) ([]database.Row, error)
}

type datasetUsecase struct {
	log         *logrus.Logger
	datasetRepo repository.DatasetRepository
}

func NewDatasetUsecase(log *logrus.Logger, datasetRepo repository.DatasetRepository) DatasetUsecase {
	return &datasetUsecase{
		log:         log,
		datasetRepo: datasetRepo,
	}
}

func (u *datasetUsecase) Filter(ctx context.Context, table, column, value string) ([]database.Row, error) {
	if !identity.FromContext(ctx).HasRole(entity.RolePhysician, entity.RoleAdmin) {
		return nil, ErrFilterStaffOnly
	}
	if table == "" || column == "" || value == "" {
		return nil, ErrMissingFilter
	}

	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := u.datasetRepo.Filter(ctx, db, table, column, value)
	if err != nil {
		u.log.Warnf("Failed to filter %s.%s: %+v", table, column, err)
		return nil, err
	}
	return rows, nil
}

func (u *datasetUsecase) List(ctx context.Context, dataset string) ([]database.Row, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := u.datasetRepo.List(ctx, db, dataset)
	if err != nil {
		u.log.Warnf("Failed to list dataset %s: %+v", dataset, err)
		return nil, err
	}
	return rows, nil
}
