package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientEmailTaken  = errors.New("a patient with this email already exists")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth, use YYYY-MM-DD")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context) (*dto.PatientListResponse, error)
	Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, patientID uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	existing, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check patient email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientEmailTaken
	}

	patient := &entity.Patient{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Sex:         req.Sex,
		Address:     req.Address,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		u.log.Errorf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Email != "" && req.Email != patient.Email {
		existing, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrPatientEmailTaken
		}
		patient.Email = req.Email
	}
	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Address != "" {
		patient.Address = req.Address
	}

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		u.log.Errorf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, patientID uuid.UUID) error {
	affected, err := u.patientRepo.Delete(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Errorf("Failed to delete patient %s: %+v", patientID, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}
	u.log.Infof("Patient deleted: id=%s", patientID)
	return nil
}
