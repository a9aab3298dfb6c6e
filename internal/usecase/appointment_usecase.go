package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/converter"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/repository"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/policy"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrProfileNotFound     = errors.New("no patient profile for this account")
	ErrInvalidDoctor       = errors.New("doctor does not exist")
	ErrInvalidSchedule     = errors.New("appointment time must be in the future")
	ErrInvalidTransition   = errors.New("appointment status does not allow this change")

	// ErrAccessDenied is the uniform authorization failure surfaced by the
	// scheduling and record operations.
	ErrAccessDenied = policy.ErrDenied
)

type AppointmentUsecase interface {
	Book(ctx context.Context, caller entity.Principal, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, caller entity.Principal) (*dto.AppointmentListResponse, error)
	RecordVisit(ctx context.Context, caller entity.Principal, appointmentID int64, req *dto.RecordVisitRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, caller entity.Principal, appointmentID int64) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

// Book creates an appointment for the caller's OWN patient profile. The
// profile is resolved from the principal, never taken from the request, so
// a patient cannot book on behalf of someone else.
func (u *appointmentUsecase) Book(ctx context.Context, caller entity.Principal, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := policy.Authorize(caller, policy.ActionBookAppointment, policy.Target{PatientUserID: caller.UserID}); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrProfileNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrInvalidDoctor
	}

	when, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	if !when.After(time.Now()) {
		return nil, ErrInvalidSchedule
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: when.UTC(),
		Status:      entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(ctx, tx, &caller.UserID, entity.AuditActionAppointmentBook, "appointment", fmt.Sprintf("%d", appointment.ID), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, patient=%d, doctor=%d", appointment.ID, patient.ID, doctor.ID)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// List returns appointments visible to the caller. The role filter lives
// here, not in the delivery layer: it is the only boundary separating one
// patient's appointments from another's.
func (u *appointmentUsecase) List(ctx context.Context, caller entity.Principal) (*dto.AppointmentListResponse, error) {
	var (
		appointments []entity.Appointment
		err          error
	)

	switch caller.Role {
	case entity.RoleAdmin:
		appointments, err = u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	case entity.RoleDoctor:
		var doctor *entity.Doctor
		doctor, err = u.doctorRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err == nil {
			if doctor == nil {
				return nil, ErrProfileNotFound
			}
			appointments, err = u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctor.ID)
		}
	case entity.RolePatient:
		var patient *entity.Patient
		patient, err = u.patientRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err == nil {
			if patient == nil {
				return nil, ErrProfileNotFound
			}
			appointments, err = u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
		}
	default:
		return nil, ErrAccessDenied
	}

	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// RecordVisit sets the visit notes and completes the appointment. Only the
// assigned doctor or an admin may do this. Re-saving a completed visit is
// allowed; a cancelled appointment can never be completed.
func (u *appointmentUsecase) RecordVisit(ctx context.Context, caller entity.Principal, appointmentID int64, req *dto.RecordVisitRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := policy.Authorize(caller, policy.ActionRecordVisit, policy.Target{DoctorUserID: appointment.Doctor.UserID}); err != nil {
		return nil, err
	}

	if !appointment.CanComplete() {
		return nil, ErrInvalidTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.RecordVisit(tx, appointmentID, req.Notes)
	if err != nil {
		u.log.Warnf("Failed to record visit for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		// Lost the race against a concurrent cancellation.
		return nil, ErrInvalidTransition
	}

	if err := u.auditService.Log(ctx, tx, &caller.UserID, entity.AuditActionVisitRecord, "appointment", fmt.Sprintf("%d", appointmentID), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Visit recorded: appointment=%d", appointmentID)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointmentID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Cancel moves a scheduled appointment to Cancelled. Only the owning
// patient or an admin may cancel; terminal states are never reopened.
func (u *appointmentUsecase) Cancel(ctx context.Context, caller entity.Principal, appointmentID int64) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := policy.Authorize(caller, policy.ActionCancelAppointment, policy.Target{PatientUserID: appointment.Patient.UserID}); err != nil {
		return err
	}

	if !appointment.CanCancel() {
		return ErrInvalidTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Cancel(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}

	if err := u.auditService.Log(ctx, tx, &caller.UserID, entity.AuditActionAppointmentCancel, "appointment", fmt.Sprintf("%d", appointmentID), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled: id=%d", appointmentID)
	return nil
}
