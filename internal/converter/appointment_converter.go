package converter

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO. Patient
// and doctor names are included when the relations were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		ScheduledAt: appointment.ScheduledAt,
		Status:      string(appointment.Status),
		Notes:       appointment.Notes,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}

	if appointment.Patient.ID != 0 {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AppointmentsToNotesHistory projects completed visits into the patient's
// medical history view: when, who, and what was recorded.
func AppointmentsToNotesHistory(appointments []entity.Appointment) []dto.NotesHistoryEntry {
	entries := make([]dto.NotesHistoryEntry, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Notes == nil {
			continue
		}
		entries = append(entries, dto.NotesHistoryEntry{
			When:       appointment.ScheduledAt,
			DoctorName: appointment.Doctor.Name,
			Notes:      *appointment.Notes,
		})
	}
	return entries
}
