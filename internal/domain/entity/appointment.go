package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment represents one scheduled visit.
//
// Date is a single absolute timestamp combining the calendar date and the
// slot time-of-day; there is no separate end time, the duration is implied
// by the slot granularity. AppointmentPriceInCents is a snapshot of the
// doctor's price at booking time and is not re-derived afterwards.
//
// The unique index on (doctor_id, date) is what makes concurrent bookings
// of the same slot impossible: two simultaneous commits cannot both pass it.
type Appointment struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID                uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	DoctorID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_doctor_slot" json:"doctor_id"`
	PatientID               uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date                    time.Time `gorm:"type:timestamptz;not null;uniqueIndex:idx_appointments_doctor_slot" json:"date"`
	AppointmentPriceInCents int       `gorm:"not null" json:"appointment_price_in_cents"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic  Clinic  `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
