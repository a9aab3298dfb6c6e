package repository

import (
	"errors"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	domainRepo "github.com/akashss78/smart-healthcare-appointment-system/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalReportRepository struct{}

func NewMedicalReportRepository() domainRepo.MedicalReportRepository {
	return &medicalReportRepository{}
}

func (r *medicalReportRepository) Create(db *gorm.DB, report *entity.MedicalReport) error {
	return db.Create(report).Error
}

func (r *medicalReportRepository) FindByID(db *gorm.DB, id int64) (*entity.MedicalReport, error) {
	var report entity.MedicalReport
	err := db.Preload("Appointment").Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *medicalReportRepository) FindByAppointmentID(db *gorm.DB, appointmentID int64) ([]entity.MedicalReport, error) {
	var reports []entity.MedicalReport
	err := db.Where("appointment_id = ?", appointmentID).
		Order("uploaded_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// FindByPatientID joins through appointments so a report only ever surfaces
// for the patient its appointment belongs to.
func (r *medicalReportRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.MedicalReport, error) {
	var reports []entity.MedicalReport
	err := db.Joins("JOIN appointments ON appointments.id = medical_reports.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("medical_reports.uploaded_at DESC, medical_reports.id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
