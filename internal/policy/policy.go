// Package policy is the single access decision point for the clinical
// scheduling service. Every mutating operation and every cross-entity read
// consults Authorize before touching the store. The package is pure: no
// I/O, no store access — callers resolve the target's owners first and pass
// them in.
package policy

import (
	"errors"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/domain/entity"
)

// ErrDenied is the uniform denial. It deliberately carries no detail about
// which rule failed so callers cannot probe for other users' data.
var ErrDenied = errors.New("access denied")

// Action identifies a guarded operation.
type Action string

const (
	ActionBookAppointment    Action = "appointment.book"
	ActionCancelAppointment  Action = "appointment.cancel"
	ActionRecordVisit        Action = "appointment.visit.record"
	ActionAttachReport       Action = "report.attach"
	ActionListReports        Action = "report.list"
	ActionListPatientReports Action = "report.list_for_patient"
	ActionListNotesHistory   Action = "notes.history"
	ActionLinkHealthID       Action = "patient.health_id.link"
	ActionViewAuditTrail     Action = "audit.view"
)

// Target carries the resolved ownership of the entity an action applies to.
// A zero field means the target has no owner of that kind.
type Target struct {
	// PatientUserID is the user id behind the patient the target belongs to.
	PatientUserID int64
	// DoctorUserID is the user id behind the doctor assigned to the target.
	DoctorUserID int64
}

// patientActions are the actions a patient may perform on their own records.
var patientActions = map[Action]bool{
	ActionBookAppointment:    true,
	ActionCancelAppointment:  true,
	ActionListReports:        true,
	ActionListPatientReports: true,
	ActionListNotesHistory:   true,
	ActionLinkHealthID:       true,
}

// doctorActions are the actions a doctor may perform on appointments they
// are assigned to.
var doctorActions = map[Action]bool{
	ActionRecordVisit:  true,
	ActionAttachReport: true,
	ActionListReports:  true,
}

// Authorize decides whether the principal may perform action on target.
// Rules, in priority order: admin is allowed everything; a patient only
// actions on their own profile; a doctor only actions on appointments
// assigned to them. Anything else is denied — there is no implicit allow.
func Authorize(p entity.Principal, action Action, target Target) error {
	switch p.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RolePatient:
		if patientActions[action] && target.PatientUserID != 0 && target.PatientUserID == p.UserID {
			return nil
		}
	case entity.RoleDoctor:
		if doctorActions[action] && target.DoctorUserID != 0 && target.DoctorUserID == p.UserID {
			return nil
		}
	}
	return ErrDenied
}
