package handler

import (
	"encoding/json"
	"net/http"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase  usecase.AppointmentUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase:  appointmentUsecase,
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetAvailableTimes returns the doctor's slot list for one day. The doctor id
// and date are forwarded as-is: the usecase treats missing input as an empty
// result rather than an error.
func (h *AppointmentHandler) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctorId"]
	date := r.URL.Query().Get("date")

	result, err := h.availabilityUsecase.GetAvailableTimes(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrUnauthorized:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get available times")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available times retrieved successfully", result)
}

func (h *AppointmentHandler) UpsertAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.UpsertAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnauthorized:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "Requested time slot is not available")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save appointment")
		}
		return
	}

	status := http.StatusCreated
	message := "Appointment booked successfully"
	if req.ID != nil {
		status = http.StatusOK
		message = "Appointment updated successfully"
	}
	response.Success(w, status, message, result)
}

func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	filter := &entity.AppointmentFilter{
		StartAt: r.URL.Query().Get("startAt"),
		EndAt:   r.URL.Query().Get("endAt"),
	}

	result, err := h.appointmentUsecase.GetAppointments(r.Context(), filter)
	if err != nil {
		switch err {
		case usecase.ErrUnauthorized:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", result)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrUnauthorized:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
