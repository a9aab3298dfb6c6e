package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/http/middleware"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/storage"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/usecase"
	"github.com/akashss78/smart-healthcare-appointment-system/pkg/response"

	"github.com/gorilla/mux"
)

// maxReportUploadSize caps a single report upload at 16 MiB.
const maxReportUploadSize = 16 << 20

type RecordHandler struct {
	recordUsecase usecase.RecordUsecase
}

func NewRecordHandler(recordUsecase usecase.RecordUsecase) *RecordHandler {
	return &RecordHandler{
		recordUsecase: recordUsecase,
	}
}

// AttachReport uploads a medical report file for an appointment
// @Summary Attach report
// @Description Upload a report file and append it to the appointment's record
// @Tags Records
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Appointment ID"
// @Param file formData file true "Report file"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /appointments/{id}/reports [post]
func (h *RecordHandler) AttachReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReportUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Report file is required")
		return
	}
	defer file.Close()

	report, err := h.recordUsecase.AttachReport(r.Context(), principal, appointmentID, header.Filename, file)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You don't have permission to access this resource")
		case storage.ErrMissingFileName:
			response.BadRequest(w, "Report file name is required")
		default:
			response.InternalServerError(w, "Failed to attach report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Report attached successfully", report)
}

// ListReportsForAppointment lists the reports attached to an appointment
// @Summary List appointment reports
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /appointments/{id}/reports [get]
func (h *RecordHandler) ListReportsForAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	reports, err := h.recordUsecase.ListReportsForAppointment(r.Context(), principal, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You don't have permission to access this resource")
		default:
			response.InternalServerError(w, "Failed to list reports")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

// ListReportsForPatient lists every report across a patient's appointments
// @Summary List patient reports
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patients/{id}/reports [get]
func (h *RecordHandler) ListReportsForPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	reports, err := h.recordUsecase.ListReportsForPatient(r.Context(), principal, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You don't have permission to access this resource")
		default:
			response.InternalServerError(w, "Failed to list reports")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

// ListNotesHistory lists a patient's recorded visits, newest first
// @Summary Patient notes history
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patients/{id}/notes [get]
func (h *RecordHandler) ListNotesHistory(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	history, err := h.recordUsecase.ListNotesHistory(r.Context(), principal, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You don't have permission to access this resource")
		default:
			response.InternalServerError(w, "Failed to list notes history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notes history retrieved successfully", history)
}

// DownloadReport streams a stored report file back to the caller
// @Summary Download report
// @Tags Records
// @Security BearerAuth
// @Produce octet-stream
// @Param id path int true "Report ID"
// @Success 200 {file} binary
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/{id}/download [get]
func (h *RecordHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	reportID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, blob, err := h.recordUsecase.OpenReport(r.Context(), principal, reportID)
	if err != nil {
		switch err {
		case usecase.ErrReportNotFound, usecase.ErrAppointmentNotFound, storage.ErrBlobNotFound:
			response.NotFound(w, "Report not found")
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You don't have permission to access this resource")
		default:
			response.InternalServerError(w, "Failed to download report")
		}
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ReportName))
	// Headers are already written; a copy failure can only abort the stream.
	io.Copy(w, blob)
}
