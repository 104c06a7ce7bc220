package entity

import (
	"fmt"
	"time"

	"dental-clinic-api/internal/domain/scheduling"

	"github.com/google/uuid"
)

// Doctor represents a clinic doctor and owns the weekly schedule rows
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Specialty string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	ScheduleDays []DoctorScheduleDay `gorm:"foreignKey:DoctorID" json:"schedule_days,omitempty"`
	Appointments []Appointment       `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorScheduleDay is one weekday's working hours for a doctor. Every
// doctor has exactly seven rows, one per weekday (0 = Sunday).
type DoctorScheduleDay struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_weekday" json:"doctor_id"`
	Weekday   int       `gorm:"not null;uniqueIndex:idx_doctor_weekday" json:"weekday"`
	Available bool      `gorm:"not null;default:false" json:"available"`
	OpenTime  string    `gorm:"type:varchar(8)" json:"open_time,omitempty"`
	CloseTime string    `gorm:"type:varchar(8)" json:"close_time,omitempty"`
}

func (DoctorScheduleDay) TableName() string {
	return "doctor_schedule_days"
}

// DefaultScheduleDays builds the seven schedule rows installed at doctor
// creation: Monday-Friday 08:00-18:00, weekends closed.
func DefaultScheduleDays(doctorID uuid.UUID) []DoctorScheduleDay {
	defaults := scheduling.DefaultWeeklySchedule()
	days := make([]DoctorScheduleDay, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := DoctorScheduleDay{DoctorID: doctorID, Weekday: int(wd)}
		if defaults.IsOpen(wd) {
			day.Available = true
			day.OpenTime = defaults.Day(wd).Open.String()
			day.CloseTime = defaults.Day(wd).Close.String()
		}
		days[wd] = day
	}
	return days
}

// WeeklySchedule converts the persisted schedule rows into the scheduling
// engine's value type. Missing rows are treated as closed days.
func (d *Doctor) WeeklySchedule() (scheduling.WeeklySchedule, error) {
	var s scheduling.WeeklySchedule
	for _, row := range d.ScheduleDays {
		if row.Weekday < 0 || row.Weekday > 6 {
			return s, fmt.Errorf("%w: weekday %d out of range", scheduling.ErrInvalidSchedule, row.Weekday)
		}
		if !row.Available {
			continue
		}
		open, err := scheduling.ParseTimeOfDay(row.OpenTime)
		if err != nil {
			return s, err
		}
		closeAt, err := scheduling.ParseTimeOfDay(row.CloseTime)
		if err != nil {
			return s, err
		}
		if err := s.SetDay(time.Weekday(row.Weekday), true, open, closeAt); err != nil {
			return s, err
		}
	}
	return s, nil
}
