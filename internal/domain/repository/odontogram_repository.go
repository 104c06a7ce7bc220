package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OdontogramRepository interface {
	Create(db *gorm.DB, odontogram *entity.Odontogram) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.Odontogram, error)
	AddTooth(db *gorm.DB, record *entity.ToothRecord) error
	DeleteTooth(db *gorm.DB, odontogramID uuid.UUID, recordID int) (int64, error)
}
