package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/dto"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachReport_AssignedDoctor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)

	resp, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), appointment.ID, "blood_panel.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, resp.AppointmentID)
	assert.Equal(t, "blood_panel.pdf", resp.ReportName)
	assert.NotEmpty(t, resp.StorageRef)

	// The stored bytes come back through the blob store untouched.
	meta, blob, err := env.record.OpenReport(context.Background(), env.principalForDoctor(t, smith), resp.ID)
	require.NoError(t, err)
	defer blob.Close()
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
	assert.Equal(t, "blood_panel.pdf", meta.ReportName)
}

func TestAttachReport_AccessRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	jones := env.createDoctor(t, "Mary Jones", "Dermatology", "docpass2")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)

	_, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, jones), appointment.ID, "x.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.record.AttachReport(context.Background(), env.principalForPatient(t, alice), appointment.ID, "x.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.record.AttachReport(context.Background(), env.adminPrincipal(t), appointment.ID, "x.pdf", strings.NewReader("x"))
	assert.NoError(t, err)
}

func TestAttachReport_UnknownAppointment(t *testing.T) {
	env := newTestEnv(t)
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	_, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), 555, "x.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAttachReport_IsAppendOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)
	caller := env.principalForDoctor(t, smith)

	first, err := env.record.AttachReport(context.Background(), caller, appointment.ID, "scan.pdf", strings.NewReader("v1"))
	require.NoError(t, err)
	second, err := env.record.AttachReport(context.Background(), caller, appointment.ID, "scan.pdf", strings.NewReader("v2"))
	require.NoError(t, err)

	// Same name twice appends a second entry, it never replaces the first.
	assert.NotEqual(t, first.ID, second.ID)

	list, err := env.record.ListReportsForAppointment(context.Background(), caller, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestListReportsForAppointment_Visibility(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)

	_, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), appointment.ID, "scan.pdf", strings.NewReader("data"))
	require.NoError(t, err)

	// Assigned doctor and owning patient can see the reports.
	list, err := env.record.ListReportsForAppointment(context.Background(), env.principalForDoctor(t, smith), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = env.record.ListReportsForAppointment(context.Background(), env.principalForPatient(t, alice), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	// An unrelated patient cannot.
	_, err = env.record.ListReportsForAppointment(context.Background(), env.principalForPatient(t, bob), appointment.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListReportsForPatient_JoinsAcrossAppointments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	jones := env.createDoctor(t, "Mary Jones", "Dermatology", "docpass2")

	apt1 := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)
	apt2 := env.createAppointment(t, alice, jones, entity.AppointmentStatusCompleted)
	aptBob := env.createAppointment(t, bob, smith, entity.AppointmentStatusCompleted)

	_, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), apt1.ID, "a.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = env.record.AttachReport(context.Background(), env.principalForDoctor(t, jones), apt2.ID, "b.pdf", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), aptBob.ID, "c.pdf", strings.NewReader("c"))
	require.NoError(t, err)

	list, err := env.record.ListReportsForPatient(context.Background(), env.principalForPatient(t, alice), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	for _, r := range list.Reports {
		assert.NotEqual(t, aptBob.ID, r.AppointmentID)
	}

	// A patient cannot query another patient's record, a doctor cannot
	// browse by patient at all.
	_, err = env.record.ListReportsForPatient(context.Background(), env.principalForPatient(t, bob), alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = env.record.ListReportsForPatient(context.Background(), env.principalForDoctor(t, smith), alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	adminList, err := env.record.ListReportsForPatient(context.Background(), env.adminPrincipal(t), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, adminList.Total)
}

func TestListNotesHistory_OnlyRecordedVisits(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")

	recorded := env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)
	env.createAppointment(t, alice, smith, entity.AppointmentStatusScheduled)

	_, err := env.appointment.RecordVisit(context.Background(), env.principalForDoctor(t, smith), recorded.ID, &dto.RecordVisitRequest{
		Notes: "Prescribed rest and fluids.",
	})
	require.NoError(t, err)

	history, err := env.record.ListNotesHistory(context.Background(), env.principalForPatient(t, alice), alice.ID)
	require.NoError(t, err)
	require.Equal(t, 1, history.Total)
	assert.Equal(t, "Prescribed rest and fluids.", history.Entries[0].Notes)
	assert.Equal(t, "John Smith", history.Entries[0].DoctorName)
}

func TestListNotesHistory_AccessRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")

	_, err := env.record.ListNotesHistory(context.Background(), env.principalForPatient(t, bob), alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	history, err := env.record.ListNotesHistory(context.Background(), env.adminPrincipal(t), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Total)
}

func TestListNotesHistory_UnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.record.ListNotesHistory(context.Background(), env.adminPrincipal(t), 999)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestOpenReport_AccessRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPatient(t, "alice", "Alice Moore", "secret123")
	bob := env.createPatient(t, "bob", "Bob Ray", "secret123")
	smith := env.createDoctor(t, "John Smith", "Cardiology", "docpass1")
	appointment := env.createAppointment(t, alice, smith, entity.AppointmentStatusCompleted)

	report, err := env.record.AttachReport(context.Background(), env.principalForDoctor(t, smith), appointment.ID, "scan.pdf", strings.NewReader("bytes"))
	require.NoError(t, err)

	// The owning patient can download their own report.
	_, blob, err := env.record.OpenReport(context.Background(), env.principalForPatient(t, alice), report.ID)
	require.NoError(t, err)
	blob.Close()

	_, _, err = env.record.OpenReport(context.Background(), env.principalForPatient(t, bob), report.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestOpenReport_UnknownReport(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.record.OpenReport(context.Background(), env.adminPrincipal(t), 404)
	assert.ErrorIs(t, err, ErrReportNotFound)
}
