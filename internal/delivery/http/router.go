package http

import (
	"net/http"

	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	patientHandler     *handler.PatientHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	odontogramHandler  *handler.OdontogramHandler
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	odontogramHandler *handler.OdontogramHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		odontogramHandler:  odontogramHandler,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient records
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Dental charts
	api.HandleFunc("/patients/{id}/odontogram", r.odontogramHandler.GetOdontogram).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/odontogram/teeth", r.odontogramHandler.AddToothRecord).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/odontogram/teeth/{recordId}", r.odontogramHandler.RemoveToothRecord).Methods(http.MethodDelete)

	// Doctor management
	api.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	api.HandleFunc("/doctors/{id}/schedule", r.doctorHandler.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/schedule/{weekday}", r.doctorHandler.UpdateScheduleDay).Methods(http.MethodPut)
	api.HandleFunc("/doctors/{id}/next-slot", r.appointmentHandler.GetNextSlot).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/appointments", r.appointmentHandler.GetAppointmentsByDoctor).Methods(http.MethodGet)

	// Appointment scheduling
	api.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/start", r.appointmentHandler.StartAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/appointments", r.appointmentHandler.GetAppointmentsByPatient).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
