package converter

import (
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO,
// including the weekly schedule when the rows are loaded
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:        doctor.ID,
		FullName:  doctor.FullName,
		Email:     doctor.Email,
		Phone:     doctor.Phone,
		Specialty: doctor.Specialty,
		CreatedAt: doctor.CreatedAt,
		UpdatedAt: doctor.UpdatedAt,
	}

	for _, day := range doctor.ScheduleDays {
		response.Schedule = append(response.Schedule, ScheduleDayToResponse(day))
	}

	return response
}

// ScheduleDayToResponse converts one weekday's schedule row
func ScheduleDayToResponse(day entity.DoctorScheduleDay) dto.ScheduleDayResponse {
	resp := dto.ScheduleDayResponse{
		Weekday:   day.Weekday,
		DayName:   time.Weekday(day.Weekday).String(),
		Available: day.Available,
	}
	if day.Available {
		resp.OpenTime = day.OpenTime
		resp.CloseTime = day.CloseTime
	}
	return resp
}

// DoctorsToResponses converts a slice of Doctor entities to response DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}
