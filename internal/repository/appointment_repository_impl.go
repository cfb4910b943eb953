package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// Book goes through the booking procedure, which checks that the physician
// works at the clinic and that the slot is free.
func (r *appointmentRepository) Book(ctx context.Context, q database.Querier, a *entity.Appointment) error {
	return q.CallProcedure(ctx, entity.ProcedureBookAppointment,
		a.PatientID, a.PhysicianID, a.ClinicID, a.AppointmentDate, a.AppointmentTime)
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.AppointmentDetail, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT
			a.appointment_id,
			c.name AS clinic_name,
			c.address AS clinic_address,
			p.name AS physician_name,
			a.appointment_date,
			a.appointment_time
		FROM appointment a
		JOIN clinic c ON c.clinic_id = a.clinic_id
		JOIN physician p ON p.physician_id = a.physician_id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC`, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.AppointmentDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.AppointmentDetail{
			ID:              row.Int64("appointment_id"),
			ClinicName:      row.String("clinic_name"),
			ClinicAddress:   row.String("clinic_address"),
			PhysicianName:   row.String("physician_name"),
			AppointmentDate: row.String("appointment_date"),
			AppointmentTime: row.String("appointment_time"),
		})
	}
	return out, nil
}

func (r *appointmentRepository) DeleteOwned(ctx context.Context, q database.Querier, id, patientID int64) (bool, error) {
	res, err := q.Execute(ctx,
		`DELETE FROM appointment WHERE appointment_id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func (r *appointmentRepository) BookedSlots(ctx context.Context, q database.Querier, f entity.SlotFilter) ([]entity.BookedSlot, error) {
	var (
		rows []database.Row
		err  error
	)
	if f.Date != "" {
		rows, err = q.QueryMany(ctx, `
			SELECT physician_id, clinic_id, appointment_date, appointment_time
			FROM v_booked_time_slots
			WHERE physician_id = $1 AND clinic_id = $2 AND appointment_date = $3
			ORDER BY appointment_time`, f.PhysicianID, f.ClinicID, f.Date)
	} else {
		rows, err = q.QueryMany(ctx, `
			SELECT physician_id, clinic_id, appointment_date, appointment_time
			FROM v_booked_time_slots
			WHERE physician_id = $1 AND clinic_id = $2
			ORDER BY appointment_date, appointment_time`, f.PhysicianID, f.ClinicID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]entity.BookedSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.BookedSlot{
			PhysicianID:     row.Int64("physician_id"),
			ClinicID:        row.Int64("clinic_id"),
			AppointmentDate: row.String("appointment_date"),
			AppointmentTime: row.String("appointment_time"),
		})
	}
	return out, nil
}
