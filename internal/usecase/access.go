package usecase

import (
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/identity"
	"healthsystem/pkg/apperror"
)

var (
	ErrNotOwnRecord    = apperror.Authorization("Patients may only access their own records")
	ErrMissingPatient  = apperror.Validation("Missing required parameter: patient_id")
	ErrNoPatientRecord = apperror.Authorization("Account is not linked to a patient record")
)

// patientScope picks the patient whose records a caller may touch. Patients
// are pinned to their own reference; everyone else must name a patient.
func patientScope(id identity.Identity, requested int64) (int64, error) {
	if id.Role == entity.RolePatient {
		if id.ReferenceID == nil {
			return 0, ErrNoPatientRecord
		}
		own := *id.ReferenceID
		if requested != 0 && requested != own {
			return 0, ErrNotOwnRecord
		}
		return own, nil
	}
	if requested <= 0 {
		return 0, ErrMissingPatient
	}
	return requested, nil
}
