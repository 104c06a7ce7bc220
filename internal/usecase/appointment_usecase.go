package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/domain/scheduling"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAppointmentFinal rejects any modification of a cancelled or
	// completed appointment
	ErrAppointmentFinal = errors.New("appointment is in a final status and cannot be modified")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	Confirm(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	StartTreatment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID, reason string) (*dto.AppointmentResponse, error)
	NextSlot(ctx context.Context, doctorID uuid.UUID, from time.Time, durationMinutes int) (*dto.NextSlotResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	doctorLock      *service.DoctorLockService

	// injectable clock so the past-time rules are testable
	now func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	doctorLock *service.DoctorLockService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		doctorLock:      doctorLock,
		now:             time.Now,
	}
}

// Book validates and persists a new pending appointment.
//
// Flow:
// 1. Resolve patient and doctor (with schedule rows)
// 2. Build the proposed window
// 3. Acquire the per-doctor booking lock: the conflict validator is only
//    correct against a consistent snapshot, so read-validate-insert must be
//    serialized per doctor
// 4. Load the doctor's same-day appointments, run the conflict validator
// 5. Insert
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	window, err := scheduling.NewWindow(req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	appointment, err := entity.NewAppointment(req.PatientID, req.DoctorID, window, req.Notes, u.now())
	if err != nil {
		return nil, err
	}

	token, err := u.doctorLock.Acquire(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	defer u.doctorLock.Release(ctx, req.DoctorID, token)

	if err := u.validateAgainstCalendar(ctx, doctor, window, uuid.Nil); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, start=%s", appointment.ID, req.DoctorID, window.Start().Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// Reschedule moves an existing appointment to a new window. The appointment
// itself is excluded from the collision scan so its old slot does not
// collide with the revision.
func (u *appointmentUsecase) Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentFinal
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	window, err := scheduling.NewWindow(req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	token, err := u.doctorLock.Acquire(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	defer u.doctorLock.Release(ctx, appointment.DoctorID, token)

	if err := u.validateAgainstCalendar(ctx, doctor, window, appointment.ID); err != nil {
		return nil, err
	}

	appointment.StartTime = window.Start()
	appointment.DurationMinutes = window.DurationMinutes()
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Errorf("Failed to reschedule appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.log.Infof("Appointment rescheduled: id=%s, start=%s", appointmentID, window.Start().Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patientID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, appointmentID, (*entity.Appointment).Confirm)
}

func (u *appointmentUsecase) StartTreatment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, appointmentID, (*entity.Appointment).Start)
}

func (u *appointmentUsecase) Complete(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, appointmentID, (*entity.Appointment).Complete)
}

func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID, reason string) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, appointmentID, func(a *entity.Appointment) error {
		return a.Cancel(reason)
	})
}

// transition loads the aggregate, applies one state-machine move and saves.
// An illegal move surfaces as entity.ErrIllegalTransition with the state
// untouched.
func (u *appointmentUsecase) transition(ctx context.Context, appointmentID uuid.UUID, move func(*entity.Appointment) error) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := move(appointment); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Errorf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.log.Infof("Appointment %s moved to %s", appointmentID, appointment.Status)
	return converter.AppointmentToResponse(appointment), nil
}

// NextSlot finds the first free, legal window for the doctor starting from
// the given date.
func (u *appointmentUsecase) NextSlot(ctx context.Context, doctorID uuid.UUID, from time.Time, durationMinutes int) (*dto.NextSlotResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedule, err := doctor.WeeklySchedule()
	if err != nil {
		return nil, err
	}

	lookup := func(date time.Time) ([]scheduling.BookedSlot, error) {
		appointments, err := u.appointmentRepo.FindByDoctorBetween(u.db.WithContext(ctx), doctorID, date, date.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		return appointmentsToSlots(appointments)
	}

	window, err := scheduling.FindNextSlot(schedule, lookup, from, u.now(), durationMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.NextSlotResponse{
		DoctorID:        doctorID,
		StartTime:       window.Start(),
		EndTime:         window.End(),
		DurationMinutes: window.DurationMinutes(),
	}, nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// validateAgainstCalendar runs the conflict validator against the doctor's
// appointments on the proposed date. Must be called with the doctor's
// booking lock held.
func (u *appointmentUsecase) validateAgainstCalendar(ctx context.Context, doctor *entity.Doctor, window scheduling.Window, excludeID uuid.UUID) error {
	schedule, err := doctor.WeeklySchedule()
	if err != nil {
		return err
	}

	start := window.Start()
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := u.appointmentRepo.FindByDoctorBetween(u.db.WithContext(ctx), doctor.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s: %+v", doctor.ID, err)
		return err
	}

	slots, err := appointmentsToSlots(existing)
	if err != nil {
		return err
	}

	return scheduling.Validate(u.now(), window, schedule, slots, excludeID)
}

// appointmentsToSlots maps persisted appointments to the validator's view
func appointmentsToSlots(appointments []entity.Appointment) ([]scheduling.BookedSlot, error) {
	slots := make([]scheduling.BookedSlot, 0, len(appointments))
	for _, a := range appointments {
		w, err := a.Window()
		if err != nil {
			return nil, err
		}
		slots = append(slots, scheduling.BookedSlot{
			ID:        a.ID,
			Window:    w,
			Cancelled: a.IsCancelled(),
		})
	}
	return slots, nil
}
