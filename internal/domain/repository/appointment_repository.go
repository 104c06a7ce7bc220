package repository

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	// FindByDoctorBetween returns the doctor's non-cancelled appointments
	// whose window intersects [from, to).
	FindByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// ExpirePending atomically cancels pending appointments that started
	// before the cutoff, returning the number of rows affected.
	ExpirePending(db *gorm.DB, cutoff time.Time, note string) (int64, error)
}
