package converter

import (
	"github.com/google/uuid"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                      appointment.ID,
		ClinicID:                appointment.ClinicID,
		DoctorID:                appointment.DoctorID,
		PatientID:               appointment.PatientID,
		Date:                    appointment.Date,
		AppointmentPriceInCents: appointment.AppointmentPriceInCents,
		CreatedAt:               appointment.CreatedAt,
		UpdatedAt:               appointment.UpdatedAt,
	}

	// Include doctor and patient info if preloaded
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
