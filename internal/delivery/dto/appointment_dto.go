package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpsertAppointmentRequest creates a new appointment when ID is nil and
// edits the existing one when it is set.
type UpsertAppointmentRequest struct {
	ID                      *uuid.UUID `json:"id,omitempty"`
	PatientID               uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID                uuid.UUID  `json:"doctor_id" validate:"required"`
	Date                    string     `json:"date" validate:"required"`
	Time                    string     `json:"time" validate:"required"`
	AppointmentPriceInCents int        `json:"appointment_price_in_cents" validate:"gte=0"`
}

// Response DTOs

// TimeSlotResponse is an ephemeral projection: recomputed on every query,
// never persisted.
type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailableTimesResponse struct {
	Slots []TimeSlotResponse `json:"slots"`
}

type UpsertAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
}

type AppointmentResponse struct {
	ID                      uuid.UUID        `json:"id"`
	ClinicID                uuid.UUID        `json:"clinic_id"`
	DoctorID                uuid.UUID        `json:"doctor_id"`
	PatientID               uuid.UUID        `json:"patient_id"`
	Date                    time.Time        `json:"date"`
	AppointmentPriceInCents int              `json:"appointment_price_in_cents"`
	Doctor                  *DoctorResponse  `json:"doctor,omitempty"`
	Patient                 *PatientResponse `json:"patient,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
