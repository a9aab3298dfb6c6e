package dto

import (
	"time"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DoctorLoginRequest logs a doctor in by selected doctor id. The service
// resolves the id to the doctor's system account; the secret is always
// required.
type DoctorLoginRequest struct {
	DoctorID int64  `json:"doctor_id" validate:"required,min=1"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterPatientRequest creates a user and its patient profile atomically.
// ExternalHealthID is only persisted when ConfirmHealthIDLink is set: the
// link is a deliberate one-time action, never inferred.
type RegisterPatientRequest struct {
	Username            string `json:"username" validate:"required,min=3"`
	Password            string `json:"password" validate:"required,min=6"`
	Name                string `json:"name" validate:"required,min=2"`
	DateOfBirth         string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Phone               string `json:"phone" validate:"omitempty,min=7,max=20"`
	ExternalHealthID    string `json:"external_health_id" validate:"omitempty"`
	ConfirmHealthIDLink bool   `json:"confirm_health_id_link"`
}

// LinkHealthIDRequest performs the explicit one-time external link for an
// already registered patient.
type LinkHealthIDRequest struct {
	ExternalHealthID string `json:"external_health_id" validate:"required"`
	Confirm          bool   `json:"confirm"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        int64            `json:"id"`
	Username  string           `json:"username"`
	Role      entity.Role      `json:"role"`
	Doctor    *DoctorResponse  `json:"doctor,omitempty"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
