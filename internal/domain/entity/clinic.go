package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the tenant boundary: every doctor, patient and appointment
// belongs to exactly one clinic.
type Clinic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors      []Doctor      `gorm:"foreignKey:ClinicID" json:"doctors,omitempty"`
	Patients     []Patient     `gorm:"foreignKey:ClinicID" json:"patients,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ClinicID" json:"appointments,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
