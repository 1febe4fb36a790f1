package dto

// DashboardResponse summarizes a clinic's activity. TotalRevenue is the
// revenue expressed in currency units ("1234.50") derived from the cent
// total; both are returned so clients never re-do the division.
type DashboardResponse struct {
	TotalRevenueInCents   int64  `json:"total_revenue_in_cents"`
	TotalRevenue          string `json:"total_revenue"`
	DoctorCount           int64  `json:"doctor_count"`
	PatientCount          int64  `json:"patient_count"`
	AppointmentCount      int64  `json:"appointment_count"`
	TodayAppointmentCount int64  `json:"today_appointment_count"`
}
