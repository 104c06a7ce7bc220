package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sex constants
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Patient represents a clinic patient record
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Sex         string    `gorm:"type:char(1);not null" json:"sex"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Odontogram   *Odontogram   `gorm:"foreignKey:PatientID" json:"odontogram,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Age returns the patient's age in whole years at the given instant.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	birthday := time.Date(now.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(birthday) {
		years--
	}
	return years
}
