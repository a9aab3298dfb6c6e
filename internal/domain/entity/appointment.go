package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a scheduled visit between a patient and a doctor.
// Appointments are created in state Scheduled with no notes and are never
// deleted. Completed and Cancelled are terminal.
type Appointment struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID    int64             `gorm:"not null;index" json:"doctor_id"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	Notes       *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Reports []MedicalReport `gorm:"foreignKey:AppointmentID" json:"reports,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still open
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCompleted checks if the appointment has been completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// CanComplete reports whether a visit may be recorded against the
// appointment. Re-saving a completed visit is allowed; a cancelled
// appointment can never be completed.
func (a *Appointment) CanComplete() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusCompleted
}

// CanCancel reports whether the appointment may still be cancelled.
func (a *Appointment) CanCancel() bool {
	return a.Status == AppointmentStatusScheduled
}
