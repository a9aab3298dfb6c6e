package repository

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id int64) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, userID int64) (*entity.Patient, error)
	// LinkHealthID sets the external health id ONLY if it is currently null.
	// Returns affected rows: 1 = linked, 0 = already linked (one-time link).
	LinkHealthID(db *gorm.DB, patientID int64, externalHealthID string) (int64, error)
}
