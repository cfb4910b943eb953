package converter

import (
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
)

func CreatePatientRequestToEntity(req *dto.CreatePatientRequest) *entity.Patient {
	return &entity.Patient{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		BloodType:   req.BloodType,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
}

func RegisterPatientRequestToEntity(req *dto.RegisterPatientRequest) *entity.Patient {
	return &entity.Patient{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		BloodType:   req.BloodType,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
}

func RegisterPhysicianRequestToEntity(req *dto.RegisterPhysicianRequest) (*entity.Physician, *entity.Clinic) {
	physician := &entity.Physician{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
	}
	clinic := &entity.Clinic{
		Name:    req.ClinicName,
		Address: req.ClinicAddress,
	}
	return physician, clinic
}
