package entity

import (
	"time"
)

// MedicalReport records metadata for a report attached to an appointment.
// StorageRef is an opaque handle produced by the blob store; the service
// never inspects file bytes. Reports are append-only: they are never edited
// or deleted, forming an immutable trail per appointment and per patient.
type MedicalReport struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID int64     `gorm:"not null;index" json:"appointment_id"`
	UploadedAt    time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
	ReportName    string    `gorm:"type:varchar(255);not null" json:"report_name"`
	StorageRef    string    `gorm:"type:text;not null" json:"storage_ref"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalReport) TableName() string {
	return "medical_reports"
}
