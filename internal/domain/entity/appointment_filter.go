package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartAt string // Format: YYYY-MM-DD (inclusive)
	EndAt   string // Format: YYYY-MM-DD (inclusive)
}
