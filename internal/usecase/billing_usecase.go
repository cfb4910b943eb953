package usecase

import (
	"context"

	"healthsystem/internal/converter"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/service"
	"healthsystem/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrBillingNotFound = apperror.NotFound("Bill not found")
	ErrBillAlreadyPaid = apperror.Conflict("Bill is already paid", nil)
)

type BillingUsecase interface {
	CreateBill(ctx context.Context, req *dto.CreateBillingRequest) (*dto.CreatedResponse, error)
	GetBills(ctx context.Context, patientID int64) ([]entity.Billing, error)
	PayBill(ctx context.Context, req *dto.PayBillRequest) error
}

type billingUsecase struct {
	log          *logrus.Logger
	billingRepo  repository.BillingRepository
	auditService service.AuditService
}

func NewBillingUsecase(
	log *logrus.Logger,
	billingRepo repository.BillingRepository,
	auditService service.AuditService,
) BillingUsecase {
	return &billingUsecase{
		log:          log,
		billingRepo:  billingRepo,
		auditService: auditService,
	}
}

func (u *billingUsecase) CreateBill(ctx context.Context, req *dto.CreateBillingRequest) (*dto.CreatedResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bill := converter.BillingRequestToEntity(req)
	if err := u.billingRepo.Create(ctx, db, bill); err != nil {
		u.log.Warnf("Failed to create bill: %+v", err)
		return nil, err
	}
	return &dto.CreatedResponse{ID: bill.ID}, nil
}

func (u *billingUsecase) GetBills(ctx context.Context, patientID int64) ([]entity.Billing, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patientID, err = patientScope(identity.FromContext(ctx), patientID)
	if err != nil {
		return nil, err
	}

	bills, err := u.billingRepo.FindByPatient(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find bills for patient %d: %+v", patientID, err)
		return nil, err
	}
	return bills, nil
}

// PayBill marks the bill paid. Patients can only settle their own bills.
func (u *billingUsecase) PayBill(ctx context.Context, req *dto.PayBillRequest) error {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return err
	}
	caller := identity.FromContext(ctx)

	return db.WithinTransaction(ctx, func(tx database.Querier) error {
		bill, err := u.billingRepo.FindByID(ctx, tx, req.BillingID)
		if err != nil {
			u.log.Warnf("Failed to find bill %d: %+v", req.BillingID, err)
			return err
		}
		if bill == nil {
			return ErrBillingNotFound
		}
		if caller.Role == entity.RolePatient {
			if _, err := patientScope(caller, bill.PatientID); err != nil {
				return ErrBillingNotFound
			}
		}
		if bill.IsPaid() {
			return ErrBillAlreadyPaid
		}

		updated, err := u.billingRepo.MarkPaid(ctx, tx, bill.ID)
		if err != nil {
			u.log.Warnf("Failed to mark bill %d paid: %+v", bill.ID, err)
			return err
		}
		if !updated {
			return ErrBillingNotFound
		}

		return u.auditService.LogUpdate(ctx, tx, &caller.UserID, entity.AuditActionBillingPay, "billing", bill.ID,
			map[string]interface{}{"payment_status": bill.PaymentStatus},
			map[string]interface{}{"payment_status": entity.PaymentStatusPaid})
	})
}
