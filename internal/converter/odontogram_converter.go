package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// OdontogramToResponse converts an Odontogram entity to its response DTO
func OdontogramToResponse(odontogram *entity.Odontogram) *dto.OdontogramResponse {
	if odontogram == nil {
		return nil
	}

	response := &dto.OdontogramResponse{
		ID:        odontogram.ID,
		PatientID: odontogram.PatientID,
		Teeth:     make([]dto.ToothRecordResponse, len(odontogram.Teeth)),
		CreatedAt: odontogram.CreatedAt,
		UpdatedAt: odontogram.UpdatedAt,
	}

	for i, tooth := range odontogram.Teeth {
		response.Teeth[i] = dto.ToothRecordResponse{
			ID:          tooth.ID,
			ToothNumber: tooth.ToothNumber,
			Face:        tooth.Face,
			Condition:   tooth.Condition,
			Notes:       tooth.Notes,
			CreatedAt:   tooth.CreatedAt,
		}
	}

	return response
}
