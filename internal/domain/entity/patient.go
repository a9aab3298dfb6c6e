package entity

import (
	"time"
)

// Patient represents a patient profile linked 1:1 to a User.
//
// ExternalHealthID links the patient to an external health-record system.
// It is a one-time link: once set it is never overwritten implicitly, and
// the service never validates or dereferences it.
type Patient struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth      time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Phone            string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	ExternalHealthID *string   `gorm:"type:varchar(255)" json:"external_health_id,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// HasLinkedHealthID reports whether the one-time external link has been made.
func (p *Patient) HasLinkedHealthID() bool {
	return p.ExternalHealthID != nil && *p.ExternalHealthID != ""
}
