package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/converter"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/repository"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/policy"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/service"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("medical report not found")

// RecordUsecase owns the clinical record store: per-appointment visit notes
// history and the append-only medical report trail. Report bytes live in
// the blob store; only the opaque reference is recorded here.
type RecordUsecase interface {
	AttachReport(ctx context.Context, caller entity.Principal, appointmentID int64, reportName string, content io.Reader) (*dto.MedicalReportResponse, error)
	ListReportsForAppointment(ctx context.Context, caller entity.Principal, appointmentID int64) (*dto.MedicalReportListResponse, error)
	ListReportsForPatient(ctx context.Context, caller entity.Principal, patientID int64) (*dto.MedicalReportListResponse, error)
	ListNotesHistory(ctx context.Context, caller entity.Principal, patientID int64) (*dto.NotesHistoryResponse, error)
	OpenReport(ctx context.Context, caller entity.Principal, reportID int64) (*dto.MedicalReportResponse, io.ReadCloser, error)
}

type recordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	reportRepo      repository.MedicalReportRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	blobStore       storage.Store
	auditService    service.AuditService
}

func NewRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.MedicalReportRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	blobStore storage.Store,
	auditService service.AuditService,
) RecordUsecase {
	return &recordUsecase{
		db:              db,
		log:             log,
		reportRepo:      reportRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		blobStore:       blobStore,
		auditService:    auditService,
	}
}

// AttachReport stores the report bytes through the blob store and appends
// the metadata row. Restricted to the appointment's doctor or an admin.
func (u *recordUsecase) AttachReport(ctx context.Context, caller entity.Principal, appointmentID int64, reportName string, content io.Reader) (*dto.MedicalReportResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := policy.Authorize(caller, policy.ActionAttachReport, policy.Target{DoctorUserID: appointment.Doctor.UserID}); err != nil {
		return nil, err
	}

	ref, err := u.blobStore.Save(ctx, reportName, content)
	if err != nil {
		u.log.Warnf("Failed to store report blob: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	report := &entity.MedicalReport{
		AppointmentID: appointmentID,
		ReportName:    reportName,
		StorageRef:    ref,
	}

	if err := u.reportRepo.Create(tx, report); err != nil {
		u.log.Warnf("Failed to create medical report: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(ctx, tx, &caller.UserID, entity.AuditActionReportAttach, "medical_report", fmt.Sprintf("%d", report.ID), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Report attached: id=%d, appointment=%d, ref=%s", report.ID, appointmentID, ref)
	return converter.MedicalReportToResponse(report), nil
}

// ListReportsForAppointment returns the appointment's reports, newest
// first. Visible to the assigned doctor, the owning patient, or an admin.
func (u *recordUsecase) ListReportsForAppointment(ctx context.Context, caller entity.Principal, appointmentID int64) (*dto.MedicalReportListResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	target := policy.Target{
		PatientUserID: appointment.Patient.UserID,
		DoctorUserID:  appointment.Doctor.UserID,
	}
	if err := policy.Authorize(caller, policy.ActionListReports, target); err != nil {
		return nil, err
	}

	reports, err := u.reportRepo.FindByAppointmentID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to list reports for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.MedicalReportListResponse{
		Reports: converter.MedicalReportsToResponses(reports),
		Total:   len(reports),
	}, nil
}

// ListReportsForPatient returns every report across the patient's
// appointments. Only the patient themself or an admin may query by patient;
// a doctor must go through a specific appointment.
func (u *recordUsecase) ListReportsForPatient(ctx context.Context, caller entity.Principal, patientID int64) (*dto.MedicalReportListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := policy.Authorize(caller, policy.ActionListPatientReports, policy.Target{PatientUserID: patient.UserID}); err != nil {
		return nil, err
	}

	reports, err := u.reportRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list reports for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.MedicalReportListResponse{
		Reports: converter.MedicalReportsToResponses(reports),
		Total:   len(reports),
	}, nil
}

// ListNotesHistory returns the patient's recorded visits, newest first.
// Same access rule as ListReportsForPatient.
func (u *recordUsecase) ListNotesHistory(ctx context.Context, caller entity.Principal, patientID int64) (*dto.NotesHistoryResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := policy.Authorize(caller, policy.ActionListNotesHistory, policy.Target{PatientUserID: patient.UserID}); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindNotedByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list notes history for patient %d: %+v", patientID, err)
		return nil, err
	}

	entries := converter.AppointmentsToNotesHistory(appointments)

	return &dto.NotesHistoryResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}

// OpenReport resolves a report and opens its blob for streaming, applying
// the same visibility rule as the appointment-scoped listing.
func (u *recordUsecase) OpenReport(ctx context.Context, caller entity.Principal, reportID int64) (*dto.MedicalReportResponse, io.ReadCloser, error) {
	report, err := u.reportRepo.FindByID(u.db.WithContext(ctx), reportID)
	if err != nil {
		u.log.Warnf("Failed to find report %d: %+v", reportID, err)
		return nil, nil, err
	}
	if report == nil {
		return nil, nil, ErrReportNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), report.AppointmentID)
	if err != nil || appointment == nil {
		u.log.Warnf("Failed to find appointment %d for report %d: %+v", report.AppointmentID, reportID, err)
		return nil, nil, ErrAppointmentNotFound
	}

	target := policy.Target{
		PatientUserID: appointment.Patient.UserID,
		DoctorUserID:  appointment.Doctor.UserID,
	}
	if err := policy.Authorize(caller, policy.ActionListReports, target); err != nil {
		return nil, nil, err
	}

	blob, err := u.blobStore.Open(ctx, report.StorageRef)
	if err != nil {
		u.log.Warnf("Failed to open blob %s: %+v", report.StorageRef, err)
		return nil, nil, err
	}

	return converter.MedicalReportToResponse(report), blob, nil
}
