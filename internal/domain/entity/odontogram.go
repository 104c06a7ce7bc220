package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidToothNumber is returned for tooth numbers outside the FDI
// notation ranges
var ErrInvalidToothNumber = errors.New("invalid tooth number")

// Tooth faces in FDI charting
const (
	ToothFaceVestibular = "vestibular"
	ToothFaceLingual    = "lingual"
	ToothFaceMesial     = "mesial"
	ToothFaceDistal     = "distal"
	ToothFaceOcclusal   = "occlusal"
)

// Odontogram is a patient's dental chart, one per patient. It holds plain
// annotations; diagnosis is out of scope.
type Odontogram struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"patient_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Teeth []ToothRecord `gorm:"foreignKey:OdontogramID" json:"teeth,omitempty"`
}

func (Odontogram) TableName() string {
	return "odontograms"
}

// ToothRecord is one annotation on the chart: a tooth, the affected face
// and the observed condition.
type ToothRecord struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	OdontogramID uuid.UUID `gorm:"type:uuid;not null;index" json:"odontogram_id"`
	ToothNumber  int       `gorm:"not null" json:"tooth_number"`
	Face         string    `gorm:"type:varchar(20);not null" json:"face"`
	Condition    string    `gorm:"type:varchar(50);not null" json:"condition"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ToothRecord) TableName() string {
	return "tooth_records"
}

// ValidateToothNumber checks FDI notation: permanent teeth 11-48 and
// deciduous teeth 51-85, with digit positions 1-8 within each quadrant.
func ValidateToothNumber(n int) error {
	quadrant, position := n/10, n%10
	permanent := quadrant >= 1 && quadrant <= 4
	deciduous := quadrant >= 5 && quadrant <= 8
	if !permanent && !deciduous {
		return fmt.Errorf("%w: %d", ErrInvalidToothNumber, n)
	}
	if position < 1 || position > 8 || (deciduous && position > 5) {
		return fmt.Errorf("%w: %d", ErrInvalidToothNumber, n)
	}
	return nil
}
