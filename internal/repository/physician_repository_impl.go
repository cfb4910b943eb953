package repository

import (
	"context"
	"errors"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

type physicianRepository struct{}

func NewPhysicianRepository() domainRepo.PhysicianRepository {
	return &physicianRepository{}
}

func (r *physicianRepository) Create(ctx context.Context, q database.Querier, physician *entity.Physician) error {
	res, err := q.Execute(ctx, `
		INSERT INTO physician (name, phone_number, department)
		VALUES ($1, $2, $3)
		RETURNING physician_id`,
		physician.Name, physician.PhoneNumber, physician.Department)
	if err != nil {
		return err
	}
	physician.ID = res.InsertID
	return nil
}

func (r *physicianRepository) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Physician, error) {
	row, err := q.QueryOne(ctx, `SELECT physician_id, name, phone_number, department FROM physician WHERE physician_id = $1`, id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toPhysician(row), nil
}

// FindPage lists physicians with every clinic they work at, so a physician
// at two clinics appears twice.
func (r *physicianRepository) FindPage(ctx context.Context, q database.Querier, page entity.Page) ([]entity.PhysicianListing, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT
			p.physician_id, p.name, p.phone_number, p.department,
			c.clinic_id, c.name AS clinic, c.address AS cl_address,
			s.schedule_id, s.monday, s.tuesday, s.wednesday, s.thursday, s.friday, s.saturday, s.sunday
		FROM physician p
		LEFT JOIN works_at w ON p.physician_id = w.physician_id
		LEFT JOIN clinic c ON w.clinic_id = c.clinic_id
		LEFT JOIN schedule s ON w.schedule_id = s.schedule_id
		ORDER BY p.physician_id, c.clinic_id
		LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	listings := make([]entity.PhysicianListing, 0, len(rows))
	for _, row := range rows {
		listing := entity.PhysicianListing{
			Physician:     *toPhysician(row),
			ClinicID:      row.OptionalInt64("clinic_id"),
			ClinicName:    row.String("clinic"),
			ClinicAddress: row.String("cl_address"),
		}
		if id := row.OptionalInt64("schedule_id"); id != nil {
			listing.Schedule = toSchedule(row)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *physicianRepository) Count(ctx context.Context, q database.Querier) (int64, error) {
	row, err := q.QueryOne(ctx, `SELECT COUNT(*) AS total FROM physician`)
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

func toPhysician(row database.Row) *entity.Physician {
	return &entity.Physician{
		ID:          row.Int64("physician_id"),
		Name:        row.String("name"),
		PhoneNumber: row.String("phone_number"),
		Department:  row.String("department"),
	}
}

func toSchedule(row database.Row) *entity.Schedule {
	return &entity.Schedule{
		ID:        row.Int64("schedule_id"),
		Monday:    row.String("monday"),
		Tuesday:   row.String("tuesday"),
		Wednesday: row.String("wednesday"),
		Thursday:  row.String("thursday"),
		Friday:    row.String("friday"),
		Saturday:  row.String("saturday"),
		Sunday:    row.String("sunday"),
	}
}

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(ctx context.Context, q database.Querier, clinic *entity.Clinic) error {
	res, err := q.Execute(ctx,
		`INSERT INTO clinic (name, address) VALUES ($1, $2) RETURNING clinic_id`,
		clinic.Name, clinic.Address)
	if err != nil {
		return err
	}
	clinic.ID = res.InsertID
	return nil
}

// Upsert relies on the (name, address) unique constraint. The no-op update
// makes RETURNING yield the existing id.
func (r *clinicRepository) Upsert(ctx context.Context, q database.Querier, clinic *entity.Clinic) error {
	res, err := q.Execute(ctx, `
		INSERT INTO clinic (name, address) VALUES ($1, $2)
		ON CONFLICT (name, address) DO UPDATE SET name = EXCLUDED.name
		RETURNING clinic_id`,
		clinic.Name, clinic.Address)
	if err != nil {
		return err
	}
	clinic.ID = res.InsertID
	return nil
}

func (r *clinicRepository) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Clinic, error) {
	row, err := q.QueryOne(ctx, `SELECT clinic_id, name, address FROM clinic WHERE clinic_id = $1`, id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toClinic(row), nil
}

func (r *clinicRepository) FindAll(ctx context.Context, q database.Querier) ([]entity.Clinic, error) {
	rows, err := q.QueryMany(ctx, `SELECT clinic_id, name, address FROM clinic ORDER BY clinic_id`)
	if err != nil {
		return nil, err
	}
	clinics := make([]entity.Clinic, 0, len(rows))
	for _, row := range rows {
		clinics = append(clinics, *toClinic(row))
	}
	return clinics, nil
}

func toClinic(row database.Row) *entity.Clinic {
	return &entity.Clinic{
		ID:      row.Int64("clinic_id"),
		Name:    row.String("name"),
		Address: row.String("address"),
	}
}
