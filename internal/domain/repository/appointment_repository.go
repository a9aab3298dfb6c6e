package repository

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	// Listing methods return appointments ordered by scheduled_at descending,
	// ties broken by id descending.
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// FindNotedByPatientID returns the patient's completed visits that carry
	// notes, newest first, with the doctor preloaded.
	FindNotedByPatientID(db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	// RecordVisit atomically sets notes and completes the appointment ONLY if
	// it is not cancelled. Returns affected rows: 0 = cancelled concurrently.
	RecordVisit(db *gorm.DB, id int64, notes string) (int64, error)
	// Cancel atomically cancels the appointment ONLY while it is still
	// scheduled. Returns affected rows: 0 = already terminal.
	Cancel(db *gorm.DB, id int64) (int64, error)
}
