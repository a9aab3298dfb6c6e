package repository

import (
	"errors"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	domainRepo "github.com/akashss78/smart-healthcare-appointment-system/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByUserID(db *gorm.DB, userID int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// LinkHealthID performs the one-time link as a single guarded update so two
// concurrent link attempts cannot both succeed.
func (r *patientRepository) LinkHealthID(db *gorm.DB, patientID int64, externalHealthID string) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ? AND external_health_id IS NULL", patientID).
		Update("external_health_id", externalHealthID)
	return result.RowsAffected, result.Error
}
