package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type OdontogramHandler struct {
	odontogramUsecase usecase.OdontogramUsecase
	validator         *validator.CustomValidator
}

func NewOdontogramHandler(odontogramUsecase usecase.OdontogramUsecase, validator *validator.CustomValidator) *OdontogramHandler {
	return &OdontogramHandler{
		odontogramUsecase: odontogramUsecase,
		validator:         validator,
	}
}

func (h *OdontogramHandler) GetOdontogram(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	odontogram, err := h.odontogramUsecase.GetByPatient(r.Context(), patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
		} else {
			response.InternalServerError(w, "Failed to get odontogram")
		}
		return
	}

	response.Success(w, http.StatusOK, "Odontogram retrieved successfully", odontogram)
}

func (h *OdontogramHandler) AddToothRecord(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.AddToothRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	odontogram, err := h.odontogramUsecase.AddToothRecord(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case err == usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case errors.Is(err, entity.ErrInvalidToothNumber):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to add tooth record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Tooth record added successfully", odontogram)
}

func (h *OdontogramHandler) RemoveToothRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}
	recordID, err := strconv.Atoi(vars["recordId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tooth record ID", nil)
		return
	}

	if err := h.odontogramUsecase.RemoveToothRecord(r.Context(), patientID, recordID); err != nil {
		if err == usecase.ErrToothRecordNotFound {
			response.NotFound(w, "Tooth record not found")
		} else {
			response.InternalServerError(w, "Failed to remove tooth record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Tooth record removed successfully", nil)
}
