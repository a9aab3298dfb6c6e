package dto

import (
	"time"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID    int64  `json:"doctor_id" validate:"required,min=1"`
	ScheduledAt string `json:"scheduled_at" validate:"required"` // RFC 3339
}

type RecordVisitRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
