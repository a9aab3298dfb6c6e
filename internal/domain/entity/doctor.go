package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Doctor represents a doctor profile linked 1:1 to a User. Doctor records
// are provisioned administratively and are read-only to this service.
type Doctor struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name            string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Specialty       string          `gorm:"type:varchar(100);not null" json:"specialty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// SystemUsername returns the synthesized login username for a doctor
// account, derived from the doctor's display name.
func (d *Doctor) SystemUsername() string {
	return "dr_" + strings.ReplaceAll(strings.ToLower(d.Name), " ", "")
}
