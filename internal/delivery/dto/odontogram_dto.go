package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddToothRecordRequest struct {
	ToothNumber int    `json:"tooth_number" validate:"required"`
	Face        string `json:"face" validate:"required,oneof=vestibular lingual mesial distal occlusal"`
	Condition   string `json:"condition" validate:"required,min=2,max=50"`
	Notes       string `json:"notes" validate:"omitempty,max=500"`
}

// Response DTOs

type ToothRecordResponse struct {
	ID          int       `json:"id"`
	ToothNumber int       `json:"tooth_number"`
	Face        string    `json:"face"`
	Condition   string    `json:"condition"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type OdontogramResponse struct {
	ID        uuid.UUID             `json:"id"`
	PatientID uuid.UUID             `json:"patient_id"`
	Teeth     []ToothRecordResponse `json:"teeth"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}
