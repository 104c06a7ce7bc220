package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=30,max=180"`
	Notes           string    `json:"notes" validate:"omitempty,max=1000"`
}

// RescheduleAppointmentRequest moves an existing appointment to a new
// window; the appointment itself is excluded from the collision check.
type RescheduleAppointmentRequest struct {
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=30,max=180"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       uuid.UUID        `json:"patient_id"`
	DoctorID        uuid.UUID        `json:"doctor_id"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ConflictResponse carries the typed rejection of the scheduling engine so
// the client can render a specific message and, for overlaps, the offending
// appointment.
type ConflictResponse struct {
	Reason        string     `json:"reason"`
	ConflictingID *uuid.UUID `json:"conflicting_appointment_id,omitempty"`
}

type NextSlotResponse struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}
