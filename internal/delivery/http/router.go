package http

import (
	"net/http"

	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/http/handler"
	"github.com/akashss78/smart-healthcare-appointment-system/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	directoryHandler   *handler.DirectoryHandler
	appointmentHandler *handler.AppointmentHandler
	recordHandler      *handler.RecordHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	directoryHandler *handler.DirectoryHandler,
	appointmentHandler *handler.AppointmentHandler,
	recordHandler *handler.RecordHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		directoryHandler:   directoryHandler,
		appointmentHandler: appointmentHandler,
		recordHandler:      recordHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/login/doctor", r.authHandler.LoginDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)
	authProtected.Handle("/link-health-id", middleware.RequirePatient(http.HandlerFunc(r.authHandler.LinkHealthID))).Methods(http.MethodPost)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.directoryHandler.ListDoctors).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Own profiles
	protected.Handle("/doctors/me", middleware.RequireDoctor(http.HandlerFunc(r.directoryHandler.MyDoctorProfile))).Methods(http.MethodGet)
	protected.Handle("/patients/me", middleware.RequirePatient(http.HandlerFunc(r.directoryHandler.MyPatientProfile))).Methods(http.MethodGet)

	// Admin oversight
	protected.Handle("/users/{id}/activity", middleware.RequireAdmin(http.HandlerFunc(r.directoryHandler.ListUserActivity))).Methods(http.MethodGet)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.Handle("/appointments", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.Book))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/visit", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.appointmentHandler.RecordVisit))).Methods(http.MethodPost)

	// Clinical records
	protected.Handle("/appointments/{id}/reports", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.recordHandler.AttachReport))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/reports", r.recordHandler.ListReportsForAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/reports", r.recordHandler.ListReportsForPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/records", r.recordHandler.ListNotesHistory).Methods(http.MethodGet)
	protected.HandleFunc("/reports/{id}/download", r.recordHandler.DownloadReport).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
