package converter

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		UserID:           patient.UserID,
		Name:             patient.Name,
		DateOfBirth:      patient.DateOfBirth.Format("2006-01-02"),
		Phone:            patient.Phone,
		ExternalHealthID: patient.ExternalHealthID,
	}
}
