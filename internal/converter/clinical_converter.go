package converter

import (
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
)

func HealthReportRequestToEntity(req *dto.CreateHealthReportRequest) *entity.HealthReport {
	report := &entity.HealthReport{
		PhysicianID: req.PhysicianID,
		PatientID:   req.PatientID,
		ReportDate:  req.ReportDate,
	}
	if req.Weight != nil {
		report.Weight = *req.Weight
	}
	if req.Height != nil {
		report.Height = *req.Height
	}
	return report
}

func PrescriptionRequestToEntity(req *dto.CreatePrescriptionRequest) *entity.Prescription {
	return &entity.Prescription{
		ReportID:     req.ReportID,
		PhysicianID:  req.PhysicianID,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Instructions: req.Instructions,
	}
}

func MedicalHistoryRequestToEntity(req *dto.CreateMedicalHistoryRequest) *entity.MedicalHistory {
	history := &entity.MedicalHistory{
		PatientID:         req.PatientID,
		HealthCondition:   req.HealthCondition,
		DiagnosisDate:     req.DiagnosisDate,
		TreatmentReceived: req.TreatmentReceived,
		Outcome:           req.Outcome,
	}
	if req.OngoingCare != nil {
		history.OngoingCare = *req.OngoingCare
	}
	return history
}

func MedicalHistoryUpdateFromRequest(req *dto.UpdateMedicalHistoryRequest) entity.MedicalHistoryUpdate {
	return entity.MedicalHistoryUpdate{
		HealthCondition:   req.HealthCondition,
		DiagnosisDate:     req.DiagnosisDate,
		TreatmentReceived: req.TreatmentReceived,
		Outcome:           req.Outcome,
		OngoingCare:       req.OngoingCare,
	}
}

func BillingRequestToEntity(req *dto.CreateBillingRequest) *entity.Billing {
	bill := &entity.Billing{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		InsuranceID:   req.InsuranceID,
		PaymentStatus: entity.PaymentStatus(req.PaymentStatus),
		BillingDate:   req.BillingDate,
		DueDate:       req.DueDate,
	}
	if req.TotalAmount != nil {
		bill.TotalAmount = *req.TotalAmount
	}
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = entity.PaymentStatusPending
	}
	return bill
}

func WorksAtRequestToEntity(req *dto.CreateWorksAtRequest) *entity.WorksAt {
	return &entity.WorksAt{
		PhysicianID: req.PhysicianID,
		ClinicID:    req.ClinicID,
		ScheduleID:  req.ScheduleID,
		DateJoined:  req.DateJoined,
		HourlyRate:  req.HourlyRate,
	}
}
