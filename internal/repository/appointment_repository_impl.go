package repository

import (
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindByDoctorBetween returns non-cancelled appointments intersecting
// [from, to). An appointment intersects when it starts before to and ends
// after from; end is derived from start_time + duration.
func (r *appointmentRepository) FindByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND status != ?", doctorID, entity.AppointmentStatusCancelled).
		Where("start_time < ? AND start_time + (duration_minutes * interval '1 minute') > ?", to, from).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

// ExpirePending atomically cancels stale pending appointments, mirroring the
// status check the entity's Cancel performs so the sweep cannot touch other
// states.
func (r *appointmentRepository) ExpirePending(db *gorm.DB, cutoff time.Time, note string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("status = ? AND start_time < ?", entity.AppointmentStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status": entity.AppointmentStatusCancelled,
			"notes":  gorm.Expr("CASE WHEN notes = '' THEN ? ELSE notes || E'\\n' || ? END", note, note),
		})
	return result.RowsAffected, result.Error
}
