package usecase

import (
	"context"
	"errors"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/converter"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/repository"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/policy"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// DirectoryUsecase is the read-mostly registry of doctors and patients.
// Missing profiles are an expected condition (admin accounts own neither),
// so the lookup methods report them with sentinel errors the delivery layer
// can treat as ordinary outcomes.
type DirectoryUsecase interface {
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	FindDoctorByUser(ctx context.Context, userID int64) (*dto.DoctorResponse, error)
	FindPatientByUser(ctx context.Context, userID int64) (*dto.PatientResponse, error)
	ListUserActivity(ctx context.Context, caller entity.Principal, userID int64, limit int) (*dto.AuditLogListResponse, error)
}

type directoryUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	auditRepo   repository.AuditLogRepository
}

func NewDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditRepo repository.AuditLogRepository,
) DirectoryUsecase {
	return &directoryUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// ListDoctors returns all doctors ordered by name ascending.
func (u *directoryUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

func (u *directoryUsecase) FindDoctorByUser(ctx context.Context, userID int64) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %d: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *directoryUsecase) FindPatientByUser(ctx context.Context, userID int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user %d: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// ListUserActivity returns the most recent audit trail entries for a user,
// newest first. Only administrators may inspect the trail.
func (u *directoryUsecase) ListUserActivity(ctx context.Context, caller entity.Principal, userID int64, limit int) (*dto.AuditLogListResponse, error) {
	if err := policy.Authorize(caller, policy.ActionViewAuditTrail, policy.Target{}); err != nil {
		return nil, ErrAccessDenied
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	logs, err := u.auditRepo.FindByUserID(u.db.WithContext(ctx), userID, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit trail for user %d: %+v", userID, err)
		return nil, err
	}

	entries := converter.AuditLogsToResponses(logs)

	return &dto.AuditLogListResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}
