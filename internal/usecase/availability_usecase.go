package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrClinicNotFound    = errors.New("clinic not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type AvailabilityUsecase interface {
	GetAvailableTimes(ctx context.Context, doctorID, date string) (*dto.AvailableTimesResponse, error)

	// DeriveSlots recomputes the slot list for (doctor, day) from current
	// appointment state. The booking committer calls it server-side on every
	// attempt instead of trusting a client-supplied snapshot. A non-zero
	// excludeAppointmentID leaves that appointment's own slot out of the
	// booked set, so an edit can keep its current time.
	DeriveSlots(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time, excludeAppointmentID uuid.UUID) ([]dto.TimeSlotResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *availabilityUsecase) GetAvailableTimes(ctx context.Context, doctorID, date string) (*dto.AvailableTimesResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	// Missing input is a permissive no-op, not an error.
	if doctorID == "" || date == "" {
		return &dto.AvailableTimesResponse{Slots: []dto.TimeSlotResponse{}}, nil
	}

	parsedDoctorID, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slots, err := u.DeriveSlots(ctx, clinicID, parsedDoctorID, day, uuid.Nil)
	if err != nil {
		return nil, err
	}

	return &dto.AvailableTimesResponse{Slots: slots}, nil
}

func (u *availabilityUsecase) DeriveSlots(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time, excludeAppointmentID uuid.UUID) ([]dto.TimeSlotResponse, error) {
	// One clinic-filtered lookup: a doctor owned by another tenant is
	// indistinguishable from an absent one.
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !doctor.WorksOnWeekday(int(day.Weekday())) {
		return []dto.TimeSlotResponse{}, nil
	}

	dayStart, dayEnd := timeslot.DayBounds(day)
	appointments, err := u.appointmentRepo.FindByDoctorAndDay(ctx, u.db, doctorID, clinicID, dayStart, dayEnd)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, day.Format("2006-01-02"), err)
		return nil, err
	}

	return buildSlots(doctor, appointments, excludeAppointmentID), nil
}

// buildSlots filters the canonical full-day grid down to the doctor's daily
// window and marks every slot whose time of day is already taken. Comparison
// happens on zero-padded "HH:MM:SS" strings throughout.
func buildSlots(doctor *entity.Doctor, appointments []entity.Appointment, excludeAppointmentID uuid.UUID) []dto.TimeSlotResponse {
	booked := make(map[string]struct{}, len(appointments))
	for _, appointment := range appointments {
		if excludeAppointmentID != uuid.Nil && appointment.ID == excludeAppointmentID {
			continue
		}
		booked[timeslot.TimeOfDay(appointment.Date)] = struct{}{}
	}

	slots := make([]dto.TimeSlotResponse, 0)
	for _, t := range timeslot.Grid() {
		if !timeslot.Within(t, doctor.AvailableFromTime, doctor.AvailableToTime) {
			continue
		}
		_, taken := booked[t]
		slots = append(slots, dto.TimeSlotResponse{Time: t, Available: !taken})
	}
	return slots
}
