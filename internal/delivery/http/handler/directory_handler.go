package handler

import (
	"net/http"
	"strconv"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/http/middleware"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/usecase"
	"github.com/akashss78/smart-healthcare-appointment-system/pkg/response"

	"github.com/gorilla/mux"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
	}
}

// ListDoctors returns the doctor directory
// @Summary List doctors
// @Description List all doctors ordered by name
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// MyDoctorProfile returns the doctor profile behind the authenticated account
// @Summary Current doctor profile
// @Tags Directory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/me [get]
func (h *DirectoryHandler) MyDoctorProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctor, err := h.directoryUsecase.FindDoctorByUser(r.Context(), principal.UserID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", doctor)
}

// MyPatientProfile returns the patient profile behind the authenticated account
// @Summary Current patient profile
// @Tags Directory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/me [get]
func (h *DirectoryHandler) MyPatientProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patient, err := h.directoryUsecase.FindPatientByUser(r.Context(), principal.UserID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}

// ListUserActivity returns the audit trail for a user
// @Summary List user activity
// @Description List recent audit trail entries for a user, newest first
// @Tags Directory
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/{id}/activity [get]
func (h *DirectoryHandler) ListUserActivity(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activity, err := h.directoryUsecase.ListUserActivity(r.Context(), principal, userID, limit)
	if err != nil {
		switch err {
		case usecase.ErrAccessDenied:
			response.Forbidden(w, "You are not allowed to view this activity")
		default:
			response.InternalServerError(w, "Failed to list user activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "User activity retrieved successfully", activity)
}
