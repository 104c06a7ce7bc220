package entity

import (
	"errors"
	"fmt"
	"time"

	"dental-clinic-api/internal/domain/scheduling"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

var (
	// ErrIllegalTransition is returned when a status change is not allowed
	// from the current status. It is an expected outcome (double-click,
	// stale view), not an exceptional one; the state is left unchanged.
	ErrIllegalTransition = errors.New("illegal appointment status transition")

	// ErrPastStart is returned when creating an appointment whose start is
	// not in the future
	ErrPastStart = errors.New("appointment start must be in the future")

	// ErrMissingReference is returned when patient or doctor id is absent
	ErrMissingReference = errors.New("appointment requires both patient and doctor")
)

// Appointment is the booking aggregate. Patient and doctor are referenced by
// id only; the scheduling engine receives pre-fetched snapshots instead of
// full aggregates.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartTime       time.Time         `gorm:"not null;index" json:"start_time"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment builds a pending appointment for the given window. The
// window invariants are revalidated and a start at or before now is
// rejected; loading a persisted appointment skips the past check, since
// historical appointments legitimately start in the past.
func NewAppointment(patientID, doctorID uuid.UUID, window scheduling.Window, notes string, now time.Time) (*Appointment, error) {
	if patientID == uuid.Nil || doctorID == uuid.Nil {
		return nil, ErrMissingReference
	}
	// rebuild through the constructor so the window invariants hold
	w, err := scheduling.NewWindow(window.Start(), window.DurationMinutes())
	if err != nil {
		return nil, err
	}
	if !w.Start().After(now) {
		return nil, ErrPastStart
	}

	return &Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		StartTime:       w.Start(),
		DurationMinutes: w.DurationMinutes(),
		Status:          AppointmentStatusPending,
		Notes:           notes,
	}, nil
}

// Window returns the appointment's occupied time window.
func (a *Appointment) Window() (scheduling.Window, error) {
	return scheduling.NewWindow(a.StartTime, a.DurationMinutes)
}

// IsTerminal reports whether the appointment reached a final status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Confirm moves a pending appointment to confirmed. Re-confirming an
// already confirmed appointment fails.
func (a *Appointment) Confirm() error {
	if a.Status != AppointmentStatusPending {
		return fmt.Errorf("%w: cannot confirm a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = AppointmentStatusConfirmed
	return nil
}

// Start moves a confirmed appointment to in progress.
func (a *Appointment) Start() error {
	if a.Status != AppointmentStatusConfirmed {
		return fmt.Errorf("%w: cannot start a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = AppointmentStatusInProgress
	return nil
}

// Complete moves an in-progress appointment to completed.
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusInProgress {
		return fmt.Errorf("%w: cannot complete a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

// Cancel cancels a pending or confirmed appointment. In-progress and later
// appointments are not cancelable. The reason, when supplied, is recorded
// in the notes.
func (a *Appointment) Cancel(reason string) error {
	if a.Status != AppointmentStatusPending && a.Status != AppointmentStatusConfirmed {
		return fmt.Errorf("%w: cannot cancel a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = AppointmentStatusCancelled
	if reason != "" {
		if a.Notes != "" {
			a.Notes += "\n"
		}
		a.Notes += "Cancelled: " + reason
	}
	return nil
}
