package dto

// DoctorResponse represents a doctor in directory listings.
type DoctorResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	ConsultationFee string `json:"consultation_fee"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
