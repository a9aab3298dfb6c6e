package repository

import (
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByUserID(db *gorm.DB, userID int64, limit int) ([]entity.AuditLog, error)
}
