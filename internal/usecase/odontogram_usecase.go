package usecase

import (
	"context"
	"errors"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrToothRecordNotFound = errors.New("tooth record not found")

type OdontogramUsecase interface {
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.OdontogramResponse, error)
	AddToothRecord(ctx context.Context, patientID uuid.UUID, req *dto.AddToothRecordRequest) (*dto.OdontogramResponse, error)
	RemoveToothRecord(ctx context.Context, patientID uuid.UUID, recordID int) error
}

type odontogramUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	odontogramRepo repository.OdontogramRepository
	patientRepo    repository.PatientRepository
}

func NewOdontogramUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	odontogramRepo repository.OdontogramRepository,
	patientRepo repository.PatientRepository,
) OdontogramUsecase {
	return &odontogramUsecase{
		db:             db,
		log:            log,
		odontogramRepo: odontogramRepo,
		patientRepo:    patientRepo,
	}
}

// GetByPatient returns the patient's chart, creating an empty one on first
// access.
func (u *odontogramUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.OdontogramResponse, error) {
	odontogram, err := u.findOrCreate(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.OdontogramToResponse(odontogram), nil
}

func (u *odontogramUsecase) AddToothRecord(ctx context.Context, patientID uuid.UUID, req *dto.AddToothRecordRequest) (*dto.OdontogramResponse, error) {
	if err := entity.ValidateToothNumber(req.ToothNumber); err != nil {
		return nil, err
	}

	odontogram, err := u.findOrCreate(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record := &entity.ToothRecord{
		OdontogramID: odontogram.ID,
		ToothNumber:  req.ToothNumber,
		Face:         req.Face,
		Condition:    req.Condition,
		Notes:        req.Notes,
	}
	if err := u.odontogramRepo.AddTooth(u.db.WithContext(ctx), record); err != nil {
		u.log.Errorf("Failed to add tooth record for patient %s: %+v", patientID, err)
		return nil, err
	}

	u.log.Infof("Tooth record added: patient=%s, tooth=%d, condition=%s", patientID, req.ToothNumber, req.Condition)
	return u.GetByPatient(ctx, patientID)
}

func (u *odontogramUsecase) RemoveToothRecord(ctx context.Context, patientID uuid.UUID, recordID int) error {
	odontogram, err := u.odontogramRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find odontogram for patient %s: %+v", patientID, err)
		return err
	}
	if odontogram == nil {
		return ErrToothRecordNotFound
	}

	affected, err := u.odontogramRepo.DeleteTooth(u.db.WithContext(ctx), odontogram.ID, recordID)
	if err != nil {
		u.log.Errorf("Failed to delete tooth record %d: %+v", recordID, err)
		return err
	}
	if affected == 0 {
		return ErrToothRecordNotFound
	}
	return nil
}

func (u *odontogramUsecase) findOrCreate(ctx context.Context, patientID uuid.UUID) (*entity.Odontogram, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	odontogram, err := u.odontogramRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		return nil, err
	}
	if odontogram != nil {
		return odontogram, nil
	}

	odontogram = &entity.Odontogram{PatientID: patientID}
	if err := u.odontogramRepo.Create(u.db.WithContext(ctx), odontogram); err != nil {
		u.log.Errorf("Failed to create odontogram for patient %s: %+v", patientID, err)
		return nil, err
	}
	u.log.Infof("Odontogram created for patient %s", patientID)
	return odontogram, nil
}
