package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a person receiving care, owned by a clinic.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID    uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(20);not null" json:"phone_number"`
	Sex         string    `gorm:"type:varchar(10);not null" json:"sex"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Sex constants
const (
	SexMale   = "male"
	SexFemale = "female"
)
