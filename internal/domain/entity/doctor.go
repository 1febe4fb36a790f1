package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a practitioner owned by a clinic.
//
// The availability window is a recurring weekly range: an inclusive weekday
// range (0=Sunday..6=Saturday, no wraparound) plus an inclusive daily
// time-of-day window stored as zero-padded "HH:MM:SS" strings. Lexicographic
// comparison on these strings is equivalent to numeric comparison.
type Doctor struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID                uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name                    string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty               string    `gorm:"type:varchar(100);not null" json:"specialty"`
	AvailableFromWeekday    int       `gorm:"not null" json:"available_from_weekday"`
	AvailableToWeekday      int       `gorm:"not null" json:"available_to_weekday"`
	AvailableFromTime       string    `gorm:"type:time;not null" json:"available_from_time"`
	AvailableToTime         string    `gorm:"type:time;not null" json:"available_to_time"`
	AppointmentPriceInCents int       `gorm:"not null" json:"appointment_price_in_cents"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// WorksOnWeekday reports whether the doctor accepts appointments on the
// given weekday (0=Sunday..6=Saturday).
func (d *Doctor) WorksOnWeekday(weekday int) bool {
	return weekday >= d.AvailableFromWeekday && weekday <= d.AvailableToWeekday
}
