package repository

import (
	"testing"

	"healthsystem/pkg/apperror"
)

func TestResolveFilter(t *testing.T) {
	tests := []struct {
		table, column string
		wantTable     string
		wantColumn    string
	}{
		{"patient", "patient_id", "patient", "patient_id"},
		{"Patient", "PatientID", "patient", "patient_id"},
		{"HealthReport", "ReportDate", "health_report", "report_date"},
		{"billing", "PaymentStatus", "billing", "payment_status"},
	}
	for _, tt := range tests {
		gotTable, gotColumn, err := resolveFilter(tt.table, tt.column)
		if err != nil {
			t.Errorf("%s.%s: unexpected error %v", tt.table, tt.column, err)
			continue
		}
		if gotTable != tt.wantTable || gotColumn != tt.wantColumn {
			t.Errorf("%s.%s: got %s.%s", tt.table, tt.column, gotTable, gotColumn)
		}
	}
}

func TestResolveFilter_Rejects(t *testing.T) {
	tests := []struct {
		name, table, column string
	}{
		{"unknown table", "user_account", "email"},
		{"injection in table", "patient; DROP TABLE patient", "name"},
		{"unknown column", "patient", "password_hash"},
		{"injection in column", "patient", "name = name OR 1=1 --"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := resolveFilter(tt.table, tt.column)
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDatasetsHaveQueries(t *testing.T) {
	for _, name := range Datasets() {
		if datasets[name] == "" {
			t.Errorf("dataset %s has no query", name)
		}
	}
}
