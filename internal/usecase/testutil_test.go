package usecase

import (
	"io"
	"testing"
	"time"

	"github.com/akashss78/smart-healthcare-appointment-system/config"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/repository"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/service"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/storage"
	"github.com/akashss78/smart-healthcare-appointment-system/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full usecase stack against an in-memory database and
// an in-process redis, so business rules are exercised end to end without
// external services.
type testEnv struct {
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.JWTService
	blobStore   *storage.LocalStore

	auth        AuthUsecase
	directory   DirectoryUsecase
	appointment AppointmentUsecase
	record      RecordUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.MedicalReport{},
		&entity.AuditLog{},
	))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	blobStore, err := storage.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	reportRepo := repository.NewMedicalReportRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)

	return &testEnv{
		db:          db,
		redisClient: redisClient,
		jwtService:  jwtService,
		blobStore:   blobStore,
		auth:        NewAuthUsecase(db, log, userRepo, doctorRepo, patientRepo, jwtService, redisClient, auditService),
		directory:   NewDirectoryUsecase(db, log, doctorRepo, patientRepo, auditRepo),
		appointment: NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, patientRepo, auditService),
		record:      NewRecordUsecase(db, log, reportRepo, appointmentRepo, patientRepo, blobStore, auditService),
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func (e *testEnv) createUser(t *testing.T, username, password string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		PasswordHash: hashPassword(t, password),
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createDoctor(t *testing.T, name, specialty, password string) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{Name: name, Specialty: specialty, ConsultationFee: decimal.NewFromInt(100)}
	user := e.createUser(t, doctor.SystemUsername(), password, entity.RoleDoctor)
	doctor.UserID = user.ID
	require.NoError(t, e.db.Create(doctor).Error)
	return doctor
}

func (e *testEnv) createPatient(t *testing.T, username, name, password string) *entity.Patient {
	t.Helper()
	user := e.createUser(t, username, password, entity.RolePatient)
	patient := &entity.Patient{
		UserID:      user.ID,
		Name:        name,
		DateOfBirth: time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.db.Create(patient).Error)
	return patient
}

func (e *testEnv) createAppointment(t *testing.T, patient *entity.Patient, doctor *entity.Doctor, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour).UTC(),
		Status:      status,
	}
	require.NoError(t, e.db.Create(appointment).Error)
	return appointment
}

func (e *testEnv) createAppointmentAt(t *testing.T, patient *entity.Patient, doctor *entity.Doctor, when time.Time) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: when,
		Status:      entity.AppointmentStatusScheduled,
	}
	require.NoError(t, e.db.Create(appointment).Error)
	return appointment
}

func principalFor(user *entity.User) entity.Principal {
	return entity.Principal{UserID: user.ID, Role: user.Role}
}

func (e *testEnv) principalForPatient(t *testing.T, patient *entity.Patient) entity.Principal {
	t.Helper()
	return entity.Principal{UserID: patient.UserID, Role: entity.RolePatient}
}

func (e *testEnv) principalForDoctor(t *testing.T, doctor *entity.Doctor) entity.Principal {
	t.Helper()
	return entity.Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}
}

func (e *testEnv) adminPrincipal(t *testing.T) entity.Principal {
	t.Helper()
	admin := e.createUser(t, "admin", "adminpass", entity.RoleAdmin)
	return principalFor(admin)
}
