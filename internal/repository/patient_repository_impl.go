package repository

import (
	"context"
	"errors"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

const patientColumns = `patient_id, name, email, dob, blood_type, phone_number, address`

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, q database.Querier, patient *entity.Patient) error {
	res, err := q.Execute(ctx, `
		INSERT INTO patient (name, email, dob, blood_type, phone_number, address)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING patient_id`,
		patient.Name, patient.Email, patient.DateOfBirth, patient.BloodType, patient.PhoneNumber, patient.Address)
	if err != nil {
		return err
	}
	patient.ID = res.InsertID
	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Patient, error) {
	row, err := q.QueryOne(ctx, `SELECT `+patientColumns+` FROM patient WHERE patient_id = $1`, id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toPatient(row), nil
}

func (r *patientRepository) FindAll(ctx context.Context, q database.Querier) ([]entity.Patient, error) {
	rows, err := q.QueryMany(ctx, `SELECT `+patientColumns+` FROM patient ORDER BY patient_id`)
	if err != nil {
		return nil, err
	}
	patients := make([]entity.Patient, 0, len(rows))
	for _, row := range rows {
		patients = append(patients, *toPatient(row))
	}
	return patients, nil
}

func toPatient(row database.Row) *entity.Patient {
	return &entity.Patient{
		ID:          row.Int64("patient_id"),
		Name:        row.String("name"),
		Email:       row.String("email"),
		DateOfBirth: row.String("dob"),
		BloodType:   row.String("blood_type"),
		PhoneNumber: row.String("phone_number"),
		Address:     row.String("address"),
	}
}
