package repository

import (
	"context"
	"errors"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

const billingColumns = `billing_id, patient_id, appointment_id, insurance_id, total_amount, payment_status, billing_date, due_date`

type billingRepository struct{}

func NewBillingRepository() domainRepo.BillingRepository {
	return &billingRepository{}
}

func (r *billingRepository) Create(ctx context.Context, q database.Querier, b *entity.Billing) error {
	res, err := q.Execute(ctx, `
		INSERT INTO billing (patient_id, appointment_id, insurance_id, total_amount, payment_status, billing_date, due_date)
		VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, '')::date, CURRENT_DATE), $7)
		RETURNING billing_id`,
		b.PatientID, b.AppointmentID, b.InsuranceID, b.TotalAmount, string(b.PaymentStatus), b.BillingDate, b.DueDate)
	if err != nil {
		return err
	}
	b.ID = res.InsertID
	return nil
}

func (r *billingRepository) FindByPatient(ctx context.Context, q database.Querier, patientID int64) ([]entity.Billing, error) {
	rows, err := q.QueryMany(ctx,
		`SELECT `+billingColumns+` FROM billing WHERE patient_id = $1 ORDER BY billing_date DESC, billing_id DESC`, patientID)
	if err != nil {
		return nil, err
	}
	bills := make([]entity.Billing, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, *toBilling(row))
	}
	return bills, nil
}

func (r *billingRepository) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Billing, error) {
	row, err := q.QueryOne(ctx, `SELECT `+billingColumns+` FROM billing WHERE billing_id = $1`, id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toBilling(row), nil
}

func (r *billingRepository) MarkPaid(ctx context.Context, q database.Querier, id int64) (bool, error) {
	res, err := q.Execute(ctx,
		`UPDATE billing SET payment_status = $1 WHERE billing_id = $2`, string(entity.PaymentStatusPaid), id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func toBilling(row database.Row) *entity.Billing {
	return &entity.Billing{
		ID:            row.Int64("billing_id"),
		PatientID:     row.Int64("patient_id"),
		AppointmentID: row.OptionalInt64("appointment_id"),
		InsuranceID:   row.OptionalInt64("insurance_id"),
		TotalAmount:   row.Decimal("total_amount"),
		PaymentStatus: entity.PaymentStatus(row.String("payment_status")),
		BillingDate:   row.String("billing_date"),
		DueDate:       row.String("due_date"),
	}
}
