package repository

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

// MedicalReportRepository is append-only: reports are never updated or
// deleted once written.
type MedicalReportRepository interface {
	Create(db *gorm.DB, report *entity.MedicalReport) error
	FindByID(db *gorm.DB, id int64) (*entity.MedicalReport, error)
	// FindByAppointmentID returns reports for one appointment, newest first.
	FindByAppointmentID(db *gorm.DB, appointmentID int64) ([]entity.MedicalReport, error)
	// FindByPatientID returns reports across all of a patient's
	// appointments, newest first.
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.MedicalReport, error)
}
