package repository

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(db *gorm.DB, id int64) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID int64) (*entity.Doctor, error)
	// FindAll returns all doctors ordered by name ascending.
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
}
