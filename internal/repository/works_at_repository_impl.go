package repository

import (
	"context"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

type worksAtRepository struct{}

func NewWorksAtRepository() domainRepo.WorksAtRepository {
	return &worksAtRepository{}
}

// Create defaults date_joined to today when it is empty.
func (r *worksAtRepository) Create(ctx context.Context, q database.Querier, w *entity.WorksAt) error {
	_, err := q.Execute(ctx, `
		INSERT INTO works_at (physician_id, clinic_id, schedule_id, date_joined, hourly_rate)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, '')::date, CURRENT_DATE), $5)`,
		w.PhysicianID, w.ClinicID, w.ScheduleID, w.DateJoined, w.HourlyRate)
	return err
}

func (r *worksAtRepository) FindByPhysician(ctx context.Context, q database.Querier, physicianID int64) ([]entity.WorksAt, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT physician_id, clinic_id, schedule_id, date_joined, hourly_rate
		FROM works_at
		WHERE physician_id = $1
		ORDER BY date_joined DESC`, physicianID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.WorksAt, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.WorksAt{
			PhysicianID: row.Int64("physician_id"),
			ClinicID:    row.Int64("clinic_id"),
			ScheduleID:  row.OptionalInt64("schedule_id"),
			DateJoined:  row.String("date_joined"),
			HourlyRate:  row.OptionalDecimal("hourly_rate"),
		})
	}
	return out, nil
}
