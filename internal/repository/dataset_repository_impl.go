package repository

import (
	"context"
	"fmt"
	"strings"

	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/pkg/apperror"
)

// filterable lists every table and column the generic filter may touch.
var filterable = map[string][]string{
	"patient":         {"patient_id", "name", "email", "dob", "blood_type", "phone_number", "address"},
	"physician":       {"physician_id", "name", "phone_number", "department"},
	"appointment":     {"appointment_id", "patient_id", "physician_id", "clinic_id", "appointment_date", "appointment_time"},
	"clinic":          {"clinic_id", "name", "address"},
	"health_report":   {"report_id", "physician_id", "patient_id", "report_date", "weight", "height"},
	"billing":         {"billing_id", "patient_id", "appointment_id", "insurance_id", "total_amount", "payment_status", "billing_date", "due_date"},
	"prescription":    {"prescription_id", "report_id", "physician_id", "dosage", "frequency", "start_date", "end_date", "instructions"},
	"medical_history": {"history_id", "patient_id", "health_condition", "diagnosis_date", "treatment_received", "outcome", "ongoing_care"},
}

var datasets = map[string]string{
	"patients": `
		SELECT p.patient_id AS id, p.name, u.email, p.dob, p.blood_type AS bloodtype,
		       p.phone_number AS phone, p.address
		FROM patient p
		LEFT JOIN user_account u ON u.reference_id = p.patient_id AND u.user_type = 'patient'
		ORDER BY p.name`,
	"physicians": `
		SELECT p.physician_id AS id, p.name, u.email, p.phone_number AS phone, p.department
		FROM physician p
		LEFT JOIN user_account u ON u.reference_id = p.physician_id AND u.user_type = 'physician'
		ORDER BY p.name`,
	"clinics": `
		SELECT clinic_id AS id, name, address
		FROM clinic
		ORDER BY name`,
	"healthreports": `
		SELECT hr.report_id AS id, hr.report_date AS "reportDate",
		       p.name AS physician, pt.name AS patient,
		       hr.physician_id AS "physicianId", hr.patient_id AS "patientId",
		       hr.weight, hr.height
		FROM health_report hr
		JOIN physician p ON p.physician_id = hr.physician_id
		JOIN patient pt ON pt.patient_id = hr.patient_id
		ORDER BY hr.report_date DESC`,
	"workassignments": `
		SELECT wa.clinic_id AS "clinicId", wa.physician_id AS "physicianId",
		       wa.schedule_id AS "scheduleId", wa.date_joined AS "dateJoined",
		       '$' || wa.hourly_rate::text AS "hourlyRate"
		FROM works_at wa
		ORDER BY wa.date_joined DESC`,
}

// Datasets names every listing List accepts.
func Datasets() []string {
	return []string{"patients", "physicians", "clinics", "healthreports", "workassignments"}
}

type datasetRepository struct{}

func NewDatasetRepository() domainRepo.DatasetRepository {
	return &datasetRepository{}
}

// Filter matches value against the text form of the column, so a single
// string parameter works for every column type.
func (r *datasetRepository) Filter(ctx context.Context, q database.Querier, table, column, value string) ([]database.Row, error) {
	t, c, err := resolveFilter(table, column)
	if err != nil {
		return nil, err
	}
	return q.QueryMany(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE %s::text = $1`, t, c), value)
}

func (r *datasetRepository) List(ctx context.Context, q database.Querier, dataset string) ([]database.Row, error) {
	sql, ok := datasets[dataset]
	if !ok {
		return nil, apperror.NotFound("Unknown dataset")
	}
	return q.QueryMany(ctx, sql)
}

// resolveFilter maps client-supplied names onto whitelisted identifiers.
// Matching ignores case and underscores so "HealthReport"/"PatientID" and
// "health_report"/"patient_id" both resolve.
func resolveFilter(table, column string) (string, string, error) {
	t, ok := lookup(keys(filterable), table)
	if !ok {
		return "", "", apperror.Validation("Invalid table name")
	}
	c, ok := lookup(filterable[t], column)
	if !ok {
		return "", "", apperror.Validation("Invalid column name")
	}
	return t, c, nil
}

func fold(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

func lookup(allowed []string, name string) (string, bool) {
	want := fold(name)
	if want == "" {
		return "", false
	}
	for _, a := range allowed {
		if fold(a) == want {
			return a, true
		}
	}
	return "", false
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
