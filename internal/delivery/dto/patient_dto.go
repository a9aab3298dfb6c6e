package dto

// PatientResponse represents a patient profile in responses.
type PatientResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	DateOfBirth      string  `json:"date_of_birth"`
	Phone            string  `json:"phone,omitempty"`
	ExternalHealthID *string `json:"external_health_id,omitempty"`
}
