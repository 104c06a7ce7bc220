package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Specialty string `json:"specialty" validate:"required,min=2,max=100"`
}

type UpdateDoctorRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,min=2,max=100"`
}

// UpdateScheduleDayRequest replaces one weekday's working hours. Hours are
// required when the day is available and must be absent when it is not.
type UpdateScheduleDayRequest struct {
	Available bool   `json:"available"`
	OpenTime  string `json:"open_time" validate:"omitempty,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"omitempty,datetime=15:04"`
}

// Response DTOs

type ScheduleDayResponse struct {
	Weekday   int    `json:"weekday"`
	DayName   string `json:"day_name"`
	Available bool   `json:"available"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

type DoctorResponse struct {
	ID        uuid.UUID             `json:"id"`
	FullName  string                `json:"full_name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone,omitempty"`
	Specialty string                `json:"specialty"`
	Schedule  []ScheduleDayResponse `json:"schedule,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
