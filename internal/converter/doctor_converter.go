package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                      doctor.ID,
		ClinicID:                doctor.ClinicID,
		Name:                    doctor.Name,
		Specialty:               doctor.Specialty,
		AvailableFromWeekday:    doctor.AvailableFromWeekday,
		AvailableToWeekday:      doctor.AvailableToWeekday,
		AvailableFromTime:       doctor.AvailableFromTime,
		AvailableToTime:         doctor.AvailableToTime,
		AppointmentPriceInCents: doctor.AppointmentPriceInCents,
		CreatedAt:               doctor.CreatedAt,
		UpdatedAt:               doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}
