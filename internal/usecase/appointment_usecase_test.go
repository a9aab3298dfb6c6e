package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_Success(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createPatient(t, "alice", "Alice Moore", "secret123")
	doctor := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	when := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	resp, err := env.appointment.Book(context.Background(), env.principalForPatient(t, patient), &dto.BookAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: when.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, patient.ID, resp.PatientID)
	assert.Equal(t, doctor.ID, resp.DoctorID)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Nil(t, resp.Notes)
	assert.Equal(t, "John Smith", resp.DoctorName)
	assert.True(t, resp.ScheduledAt.Equal(when))
}

func TestBook_RejectsPastAndMalformedTimes(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createPatient(t, "alice", "Alice Moore", "secret123")
	doctor := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	caller := env.principalForPatient(t, patient)

	_, err := env.appointment.Book(context.Background(), caller, &dto.BookAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = env.appointment.Book(context.Background(), caller, &dto.BookAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: "tomorrow at noon",
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestBook_UnknownDoctor(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createPatient(t, "alice", "Alice Moore", "secret123")

	_, err := env.appointment.Book(context.Background(), env.principalForPatient(t, patient), &dto.BookAppointmentRequest{
		DoctorID:    424242,
		ScheduledAt: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrInvalidDoctor)
}

func TestBook_DoctorCannotBook(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	_, err := env.appointment.Book(context.Background(), env.principalForDoctor(t, doctor), &dto.BookAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestBook_PatientRoleWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "noprofile", "secret123", entity.RolePatient)
	doctor := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	_, err := env.appointment.Book(context.Background(), principalFor(user), &dto.BookAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestList_RoleFiltering(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	jones := env.createDoctor(t, "Mary Jones", "Dermatology", "docpass2")

	env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)
	env.createAppointment(t, alice, jones, entity.AppointmentStatusScheduled)
	env.createAppointment(t, bob, smith, entity.AppointmentStatusScheduled)

	aliceList, err := env.appointment.List(context.Background(), env.principalForPatient(t, alice))
	require.NoError(t, err)
	assert.Equal(t, 2, aliceList.Total)
	for _, a := range aliceList.Appointments {
		assert.Equal(t, alice.ID, a.PatientID)
	}

	smithList, err := env.appointment.List(context.Background(), env.principalForDoctor(t, smith))
	require.NoError(t, err)
	assert.Equal(t, 2, smithList.Total)
	for _, a := range smithList.Appointments {
		assert.Equal(t, smith.ID, a.DoctorID)
	}

	adminList, err := env.appointment.List(context.Background(), env.adminPrincipal(t))
	require.NoError(t, err)
	assert.Equal(t, 3, adminList.Total)
}

func TestList_NewestFirstWithStableTies(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	early := env.createAppointmentAt(t, alice, smith, base)
	late := env.createAppointmentAt(t, alice, smith, base.Add(2*time.Hour))
	tieFirst := env.createAppointmentAt(t, alice, smith, base.Add(time.Hour))
	tieSecond := env.createAppointmentAt(t, alice, smith, base.Add(time.Hour))

	list, err := env.appointment.List(context.Background(), env.principalForPatient(t, alice))
	require.NoError(t, err)
	require.Equal(t, 4, list.Total)

	// Newest first; equal times break ties by id descending.
	assert.Equal(t, late.ID, list.Appointments[0].ID)
	assert.Equal(t, tieSecond.ID, list.Appointments[1].ID)
	assert.Equal(t, tieFirst.ID, list.Appointments[2].ID)
	assert.Equal(t, early.ID, list.Appointments[3].ID)
}

func TestRecordVisit_AssignedDoctorCompletes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)

	resp, err := env.appointment.RecordVisit(context.Background(), env.principalForDoctor(t, smith), appointment.ID, &dto.RecordVisitRequest{
		Notes: "Patient presented with mild symptoms.",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "Patient presented with mild symptoms.", *resp.Notes)
}

func TestRecordVisit_ReCompleteOverwritesNotes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)
	caller := env.principalForDoctor(t, smith)

	_, err := env.appointment.RecordVisit(context.Background(), caller, appointment.ID, &dto.RecordVisitRequest{Notes: "first draft"})
	require.NoError(t, err)

	resp, err := env.appointment.RecordVisit(context.Background(), caller, appointment.ID, &dto.RecordVisitRequest{Notes: "corrected notes"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
	assert.Equal(t, "corrected notes", *resp.Notes)
}

func TestRecordVisit_CancelledAppointmentStaysCancelled(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCancelled)

	_, err := env.appointment.RecordVisit(context.Background(), env.principalForDoctor(t, smith), appointment.ID, &dto.RecordVisitRequest{
		Notes: "should never land",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var stored entity.Appointment
	require.NoError(t, env.db.First(&stored, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	assert.Nil(t, stored.Notes)
}

func TestRecordVisit_OnlyAssignedDoctorOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	jones := env.createDoctor(t, "Mary Jones", "Dermatology", "docpass2")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)

	_, err := env.appointment.RecordVisit(context.Background(), env.principalForDoctor(t, jones), appointment.ID, &dto.RecordVisitRequest{Notes: "n"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.appointment.RecordVisit(context.Background(), env.principalForPatient(t, alice), appointment.ID, &dto.RecordVisitRequest{Notes: "n"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := env.appointment.RecordVisit(context.Background(), env.adminPrincipal(t), appointment.ID, &dto.RecordVisitRequest{Notes: "admin entry"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
}

func TestRecordVisit_UnknownAppointment(t *testing.T) {
	env := newTestEnv(t)
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	_, err := env.appointment.RecordVisit(context.Background(), env.principalForDoctor(t, smith), 777, &dto.RecordVisitRequest{Notes: "n"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_OwnScheduledAppointment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)

	require.NoError(t, env.appointment.Cancel(context.Background(), env.principalForPatient(t, alice), appointment.ID))

	var stored entity.Appointment
	require.NoError(t, env.db.First(&stored, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)

	// Cancelled is terminal, a second cancel is rejected.
	err := env.appointment.Cancel(context.Background(), env.principalForPatient(t, alice), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_CompletedAppointmentCannotBeCancelled(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)

	err := env.appointment.Cancel(context.Background(), env.principalForPatient(t, alice), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_OtherPatientDenied(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)

	err := env.appointment.Cancel(context.Background(), env.principalForPatient(t, bob), appointment.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
