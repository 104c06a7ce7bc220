package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/scheduling"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		h.writeSchedulingError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), appointmentID, &req)
	if err != nil {
		h.writeSchedulingError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
		} else {
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.ListByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Confirm, "Appointment confirmed successfully")
}

func (h *AppointmentHandler) StartAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.StartTreatment, "Appointment started successfully")
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Complete, "Appointment completed successfully")
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	// body is optional: cancel without a reason is fine
	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), appointmentID, req.Reason)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// GetNextSlot finds the doctor's next free window. Query parameters:
// from (YYYY-MM-DD, defaults to today) and duration (minutes, defaults 30).
func (h *AppointmentHandler) GetNextSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	from := time.Now()
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid from date, use YYYY-MM-DD", nil)
			return
		}
	}

	duration := scheduling.SlotMinutes
	if v := r.URL.Query().Get("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid duration", nil)
			return
		}
	}

	slot, err := h.appointmentUsecase.NextSlot(r.Context(), doctorID, from, duration)
	if err != nil {
		switch {
		case err == usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, scheduling.ErrNoSlotFound):
			response.NotFound(w, "No available slot within the next 30 days")
		case errors.Is(err, scheduling.ErrInvalidTime):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to find next slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Next available slot found", slot)
}

func (h *AppointmentHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	move func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error),
	message string,
) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := move(r.Context(), appointmentID)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

// writeTransitionError maps state-machine outcomes to HTTP statuses. An
// illegal transition is an expected, recoverable outcome: 409, not 500.
func (h *AppointmentHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case err == usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, entity.ErrIllegalTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// writeSchedulingError maps booking failures to HTTP statuses, attaching the
// typed conflict reason so clients can render a specific message.
func (h *AppointmentHandler) writeSchedulingError(w http.ResponseWriter, err error, fallback string) {
	var conflict *scheduling.ConflictError
	switch {
	case err == usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case err == usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case err == usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case err == usecase.ErrAppointmentFinal:
		response.Conflict(w, "Appointment is in a final status and cannot be modified")
	case err == service.ErrDoctorBusy:
		response.Conflict(w, "Another booking for this doctor is in progress, please retry")
	case errors.Is(err, scheduling.ErrInvalidTime), errors.Is(err, entity.ErrPastStart), errors.Is(err, entity.ErrMissingReference):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &conflict):
		payload := dto.ConflictResponse{Reason: string(conflict.Reason)}
		if conflict.ConflictingID != uuid.Nil {
			id := conflict.ConflictingID
			payload.ConflictingID = &id
		}
		response.Error(w, http.StatusConflict, conflict.Error(), payload)
	default:
		response.InternalServerError(w, fallback)
	}
}
