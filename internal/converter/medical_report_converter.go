package converter

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
)

// MedicalReportToResponse converts a MedicalReport entity to its DTO
func MedicalReportToResponse(report *entity.MedicalReport) *dto.MedicalReportResponse {
	if report == nil {
		return nil
	}

	return &dto.MedicalReportResponse{
		ID:            report.ID,
		AppointmentID: report.AppointmentID,
		UploadedAt:    report.UploadedAt,
		ReportName:    report.ReportName,
		StorageRef:    report.StorageRef,
	}
}

// MedicalReportsToResponses converts a slice of MedicalReport entities to DTOs
func MedicalReportsToResponses(reports []entity.MedicalReport) []dto.MedicalReportResponse {
	responses := make([]dto.MedicalReportResponse, len(reports))
	for i, report := range reports {
		resp := MedicalReportToResponse(&report)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
