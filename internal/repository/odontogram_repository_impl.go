package repository

import (
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type odontogramRepository struct{}

func NewOdontogramRepository() domainRepo.OdontogramRepository {
	return &odontogramRepository{}
}

func (r *odontogramRepository) Create(db *gorm.DB, odontogram *entity.Odontogram) error {
	return db.Create(odontogram).Error
}

func (r *odontogramRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.Odontogram, error) {
	var odontogram entity.Odontogram
	err := db.Preload("Teeth", func(db *gorm.DB) *gorm.DB {
		return db.Order("tooth_number ASC, id ASC")
	}).Where("patient_id = ?", patientID).First(&odontogram).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &odontogram, nil
}

func (r *odontogramRepository) AddTooth(db *gorm.DB, record *entity.ToothRecord) error {
	return db.Create(record).Error
}

func (r *odontogramRepository) DeleteTooth(db *gorm.DB, odontogramID uuid.UUID, recordID int) (int64, error) {
	result := db.Where("id = ? AND odontogram_id = ?", recordID, odontogramID).Delete(&entity.ToothRecord{})
	return result.RowsAffected, result.Error
}
