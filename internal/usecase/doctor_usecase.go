package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDoctorEmailTaken = errors.New("a doctor with this email already exists")
	ErrInvalidWeekday   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Get(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, doctorID uuid.UUID) error
	UpdateScheduleDay(ctx context.Context, doctorID uuid.UUID, weekday int, req *dto.UpdateScheduleDayRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

// Create registers a doctor and installs the default weekly schedule:
// Monday-Friday 08:00-18:00, weekends closed.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	existing, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check doctor email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorEmailTaken
	}

	doctor := &entity.Doctor{
		ID:        uuid.New(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}
	doctor.ScheduleDays = entity.DefaultScheduleDays(doctor.ID)

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Errorf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, specialty=%s", doctor.ID, doctor.Specialty)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Get(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Update(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Email != "" && req.Email != doctor.Email {
		existing, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDoctorEmailTaken
		}
		doctor.Email = req.Email
	}
	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Errorf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, doctorID uuid.UUID) error {
	affected, err := u.doctorRepo.Delete(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Errorf("Failed to delete doctor %s: %+v", doctorID, err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}
	u.log.Infof("Doctor deleted: id=%s", doctorID)
	return nil
}

// UpdateScheduleDay replaces one weekday's working hours. The scheduling
// engine's invariants are enforced before anything is written: an
// unavailable day carries no hours, an available day needs open < close.
func (u *doctorUsecase) UpdateScheduleDay(ctx context.Context, doctorID uuid.UUID, weekday int, req *dto.UpdateScheduleDayRequest) (*dto.DoctorResponse, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day := &entity.DoctorScheduleDay{
		DoctorID: doctorID,
		Weekday:  weekday,
	}

	var schedule scheduling.WeeklySchedule
	if req.Available {
		open, err := scheduling.ParseTimeOfDay(req.OpenTime)
		if err != nil {
			return nil, err
		}
		closeAt, err := scheduling.ParseTimeOfDay(req.CloseTime)
		if err != nil {
			return nil, err
		}
		if err := schedule.SetDay(time.Weekday(weekday), true, open, closeAt); err != nil {
			return nil, err
		}
		day.Available = true
		day.OpenTime = open.String()
		day.CloseTime = closeAt.String()
	} else {
		if req.OpenTime != "" || req.CloseTime != "" {
			return nil, fmt.Errorf("%w: an unavailable day cannot have working hours", scheduling.ErrInvalidSchedule)
		}
	}

	if err := u.doctorRepo.UpsertScheduleDay(u.db.WithContext(ctx), day); err != nil {
		u.log.Errorf("Failed to update schedule for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.log.Infof("Doctor %s schedule updated: weekday=%s available=%t", doctorID, time.Weekday(weekday), req.Available)
	return u.Get(ctx, doctorID)
}
