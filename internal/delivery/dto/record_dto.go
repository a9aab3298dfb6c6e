package dto

import (
	"time"
)

type MedicalReportResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ReportName    string    `json:"report_name"`
	StorageRef    string    `json:"storage_ref"`
}

type MedicalReportListResponse struct {
	Reports []MedicalReportResponse `json:"reports"`
	Total   int                     `json:"total"`
}

// NotesHistoryEntry is one completed visit in a patient's medical history.
type NotesHistoryEntry struct {
	When       time.Time `json:"when"`
	DoctorName string    `json:"doctor_name"`
	Notes      string    `json:"notes"`
}

type NotesHistoryResponse struct {
	Entries []NotesHistoryEntry `json:"entries"`
	Total   int                 `json:"total"`
}
