package usecase

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	defaultPhysicianPageSize = 3
	maxPhysicianPageSize     = 100
	// Bounds (page-1)*size so the offset cannot overflow.
	maxPhysicianPage = 1_000_000
)

type PhysicianUsecase interface {
	// GetPhysicians returns one page of the directory. Page numbers below one
	// and out-of-range sizes fall back to the defaults.
	GetPhysicians(ctx context.Context, page, pageSize int) ([]entity.PhysicianListing, *response.Meta, error)
}

type physicianUsecase struct {
	log           *logrus.Logger
	physicianRepo repository.PhysicianRepository
}

func NewPhysicianUsecase(log *logrus.Logger, physicianRepo repository.PhysicianRepository) PhysicianUsecase {
	return &physicianUsecase{
		log:           log,
		physicianRepo: physicianRepo,
	}
}

func normalizePage(page, pageSize int) entity.Page {
	if page < 1 {
		page = 1
	}
	if page > maxPhysicianPage {
		page = maxPhysicianPage
	}
	if pageSize < 1 || pageSize > maxPhysicianPageSize {
		pageSize = defaultPhysicianPageSize
	}
	return entity.Page{Number: page, Size: pageSize}
}

func (u *physicianUsecase) GetPhysicians(ctx context.Context, page, pageSize int) ([]entity.PhysicianListing, *response.Meta, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	p := normalizePage(page, pageSize)
	total, err := u.physicianRepo.Count(ctx, db)
	if err != nil {
		u.log.Warnf("Failed to count physicians: %+v", err)
		return nil, nil, err
	}

	listings, err := u.physicianRepo.FindPage(ctx, db, p)
	if err != nil {
		u.log.Warnf("Failed to find physicians page %d: %+v", p.Number, err)
		return nil, nil, err
	}

	return listings, &response.Meta{
		Page:       p.Number,
		PageSize:   p.Size,
		Total:      total,
		TotalPages: int(p.TotalPages(total)),
		Count:      len(listings),
	}, nil
}
