package usecase

import (
	"context"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/service"
	"healthsystem/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var ErrAppointmentNotFound = apperror.NotFound("Appointment not found")

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) error
	GetMyAppointments(ctx context.Context) ([]entity.AppointmentDetail, error)
	CancelAppointment(ctx context.Context, id int64) error
	GetBookedSlots(ctx context.Context, query *dto.BookedSlotsQuery) ([]entity.BookedSlot, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// BookAppointment books for the calling patient, or for the named patient
// when staff book on someone's behalf.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) error {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return err
	}

	patientID, err := patientScope(identity.FromContext(ctx), req.PatientID)
	if err != nil {
		return err
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		PhysicianID:     req.PhysicianID,
		ClinicID:        req.ClinicID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
	}
	if err := u.appointmentRepo.Book(ctx, db, appointment); err != nil {
		u.log.Warnf("Failed to book appointment: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) ([]entity.AppointmentDetail, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patientID, err := patientScope(identity.FromContext(ctx), 0)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatient(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return appointments, nil
}

// CancelAppointment deletes the appointment only when it belongs to the
// calling patient. Someone else's appointment looks the same as a missing one.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id int64) error {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return err
	}

	caller := identity.FromContext(ctx)
	patientID, err := patientScope(caller, 0)
	if err != nil {
		return err
	}

	return db.WithinTransaction(ctx, func(tx database.Querier) error {
		deleted, err := u.appointmentRepo.DeleteOwned(ctx, tx, id, patientID)
		if err != nil {
			u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
			return err
		}
		if !deleted {
			return ErrAppointmentNotFound
		}
		return u.auditService.LogDelete(ctx, tx, &caller.UserID, entity.AuditActionAppointmentCancel, "appointment", id,
			map[string]interface{}{"patient_id": patientID})
	})
}

func (u *appointmentUsecase) GetBookedSlots(ctx context.Context, query *dto.BookedSlotsQuery) ([]entity.BookedSlot, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	slots, err := u.appointmentRepo.BookedSlots(ctx, db, entity.SlotFilter{
		PhysicianID: query.PhysicianID,
		ClinicID:    query.ClinicID,
		Date:        query.Date,
	})
	if err != nil {
		u.log.Warnf("Failed to find booked slots: %+v", err)
		return nil, err
	}
	return slots, nil
}
