package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClinicRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type ClinicResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClinicResponse carries a fresh token pair: the clinic id travels in
// the JWT claims, so the old tokens do not see the new tenant.
type CreateClinicResponse struct {
	Clinic ClinicResponse `json:"clinic"`
	Tokens TokenResponse  `json:"tokens"`
}
