package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
)

type AppointmentRepository interface {
	Book(ctx context.Context, q database.Querier, appointment *entity.Appointment) error
	FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.AppointmentDetail, error)
	// DeleteOwned removes the appointment only if it belongs to patientID and
	// reports whether a row was deleted.
	DeleteOwned(ctx context.Context, q database.Querier, id, patientID int64) (bool, error)
	BookedSlots(ctx context.Context, q database.Querier, filter entity.SlotFilter) ([]entity.BookedSlot, error)
}
