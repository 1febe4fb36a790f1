package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpsertDoctorRequest struct {
	Name                    string `json:"name" validate:"required,min=2,max=255"`
	Specialty               string `json:"specialty" validate:"required,min=2,max=100"`
	AvailableFromWeekday    int    `json:"available_from_weekday" validate:"gte=0,lte=6"`
	AvailableToWeekday      int    `json:"available_to_weekday" validate:"gte=0,lte=6"`
	AvailableFromTime       string `json:"available_from_time" validate:"required"`
	AvailableToTime         string `json:"available_to_time" validate:"required"`
	AppointmentPriceInCents int    `json:"appointment_price_in_cents" validate:"gte=0"`
}

// Response DTOs

type DoctorResponse struct {
	ID                      uuid.UUID `json:"id"`
	ClinicID                uuid.UUID `json:"clinic_id"`
	Name                    string    `json:"name"`
	Specialty               string    `json:"specialty"`
	AvailableFromWeekday    int       `json:"available_from_weekday"`
	AvailableToWeekday      int       `json:"available_to_weekday"`
	AvailableFromTime       string    `json:"available_from_time"`
	AvailableToTime         string    `json:"available_to_time"`
	AppointmentPriceInCents int       `json:"appointment_price_in_cents"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
