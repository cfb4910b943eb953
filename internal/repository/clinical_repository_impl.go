package repository

import (
	"context"
	"fmt"
	"strings"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

// Health Report Repository

type healthReportRepository struct{}

func NewHealthReportRepository() domainRepo.HealthReportRepository {
	return &healthReportRepository{}
}

func (r *healthReportRepository) Create(ctx context.Context, q database.Querier, hr *entity.HealthReport) error {
	res, err := q.Execute(ctx, `
		INSERT INTO health_report (physician_id, patient_id, report_date, weight, height)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING report_id`,
		hr.PhysicianID, hr.PatientID, hr.ReportDate, hr.Weight, hr.Height)
	if err != nil {
		return err
	}
	hr.ID = res.InsertID
	return nil
}

func (r *healthReportRepository) FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.HealthReport, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT report_id, physician_id, patient_id, report_date, weight, height
		FROM health_report
		WHERE patient_id = $1
		ORDER BY report_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.HealthReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.HealthReport{
			ID:          row.Int64("report_id"),
			PhysicianID: row.Int64("physician_id"),
			PatientID:   row.Int64("patient_id"),
			ReportDate:  row.String("report_date"),
			Weight:      row.Decimal("weight"),
			Height:      row.Decimal("height"),
		})
	}
	return out, nil
}

// Prescription Repository

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(ctx context.Context, q database.Querier, p *entity.Prescription) error {
	res, err := q.Execute(ctx, `
		INSERT INTO prescription (report_id, physician_id, dosage, frequency, start_date, end_date, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING prescription_id`,
		p.ReportID, p.PhysicianID, p.Dosage, p.Frequency, p.StartDate, p.EndDate, p.Instructions)
	if err != nil {
		return err
	}
	p.ID = res.InsertID
	return nil
}

// FindByPatient resolves prescriptions through the health report they were
// written against.
func (r *prescriptionRepository) FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.Prescription, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT p.prescription_id, p.report_id, p.physician_id, p.dosage, p.frequency,
		       p.start_date, p.end_date, p.instructions
		FROM prescription p
		JOIN health_report hr ON p.report_id = hr.report_id
		WHERE hr.patient_id = $1
		ORDER BY p.start_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Prescription, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Prescription{
			ID:           row.Int64("prescription_id"),
			ReportID:     row.Int64("report_id"),
			PhysicianID:  row.Int64("physician_id"),
			Dosage:       row.String("dosage"),
			Frequency:    row.String("frequency"),
			StartDate:    row.String("start_date"),
			EndDate:      row.String("end_date"),
			Instructions: row.String("instructions"),
		})
	}
	return out, nil
}

// Medical History Repository

type medicalHistoryRepository struct{}

func NewMedicalHistoryRepository() domainRepo.MedicalHistoryRepository {
	return &medicalHistoryRepository{}
}

func (r *medicalHistoryRepository) Create(ctx context.Context, q database.Querier, h *entity.MedicalHistory) error {
	res, err := q.Execute(ctx, `
		INSERT INTO medical_history (patient_id, health_condition, diagnosis_date, treatment_received, outcome, ongoing_care)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING history_id`,
		h.PatientID, h.HealthCondition, h.DiagnosisDate, h.TreatmentReceived, h.Outcome, h.OngoingCare)
	if err != nil {
		return err
	}
	h.ID = res.InsertID
	return nil
}

func (r *medicalHistoryRepository) FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.MedicalHistory, error) {
	rows, err := q.QueryMany(ctx, `
		SELECT history_id, patient_id, health_condition, diagnosis_date, treatment_received, outcome, ongoing_care
		FROM medical_history
		WHERE patient_id = $1
		ORDER BY diagnosis_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.MedicalHistory, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.MedicalHistory{
			ID:                row.Int64("history_id"),
			PatientID:         row.Int64("patient_id"),
			HealthCondition:   row.String("health_condition"),
			DiagnosisDate:     row.String("diagnosis_date"),
			TreatmentReceived: row.String("treatment_received"),
			Outcome:           row.String("outcome"),
			OngoingCare:       row.Bool("ongoing_care"),
		})
	}
	return out, nil
}

// Update writes only the supplied columns. Column names come from this
// function, never from the caller.
func (r *medicalHistoryRepository) Update(ctx context.Context, q database.Querier, id int64, u entity.MedicalHistoryUpdate) (bool, error) {
	sets, args := historyAssignments(u)
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)

	sql := fmt.Sprintf(`UPDATE medical_history SET %s WHERE history_id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := q.Execute(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func historyAssignments(u entity.MedicalHistoryUpdate) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.HealthCondition != nil {
		add("health_condition", *u.HealthCondition)
	}
	if u.DiagnosisDate != nil {
		add("diagnosis_date", *u.DiagnosisDate)
	}
	if u.TreatmentReceived != nil {
		add("treatment_received", *u.TreatmentReceived)
	}
	if u.Outcome != nil {
		add("outcome", *u.Outcome)
	}
	if u.OngoingCare != nil {
		add("ongoing_care", *u.OngoingCare)
	}
	return sets, args
}
