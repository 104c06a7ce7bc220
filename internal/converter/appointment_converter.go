package converter

import (
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// Patient and doctor are embedded only when preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		StartTime:       appointment.StartTime,
		EndTime:         appointment.StartTime.Add(time.Duration(appointment.DurationMinutes) * time.Minute),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to
// response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
