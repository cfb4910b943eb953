package repository

import (
	"context"
	"errors"

	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) FindPatientProfile(ctx context.Context, q database.Querier, patientID int64) (database.Row, error) {
	return optionalRow(q.QueryOne(ctx, `
		SELECT patient_id, name, dob, blood_type, phone_number, address
		FROM patient
		WHERE patient_id = $1`, patientID))
}

// FindPhysicianProfile includes the first clinic the physician joined, if any.
func (r *profileRepository) FindPhysicianProfile(ctx context.Context, q database.Querier, physicianID int64) (database.Row, error) {
	return optionalRow(q.QueryOne(ctx, `
		SELECT p.physician_id, p.name, p.phone_number, p.department,
		       c.clinic_id, c.name AS clinic_name, c.address AS clinic_address
		FROM physician p
		LEFT JOIN LATERAL (
			SELECT w.clinic_id FROM works_at w
			WHERE w.physician_id = p.physician_id
			ORDER BY w.date_joined
			LIMIT 1
		) first_clinic ON TRUE
		LEFT JOIN clinic c ON c.clinic_id = first_clinic.clinic_id
		WHERE p.physician_id = $1`, physicianID))
}

// optionalRow turns "no rows" into a nil row.
func optionalRow(row database.Row, err error) (database.Row, error) {
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
