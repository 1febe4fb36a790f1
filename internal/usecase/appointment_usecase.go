package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrSlotUnavailable     = errors.New("requested time slot is not available")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
)

type AppointmentUsecase interface {
	UpsertAppointment(ctx context.Context, req *dto.UpsertAppointmentRequest) (*dto.UpsertAppointmentResponse, error)
	GetAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	availability    AvailabilityUsecase
	clinicCache     service.ClinicCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	availability AvailabilityUsecase,
	clinicCache service.ClinicCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		availability:    availability,
		clinicCache:     clinicCache,
	}
}

// UpsertAppointment books or reschedules a visit.
//
// Flow:
// 1. Resolve the session and its clinic
// 2. Re-derive availability for (doctor, date) from current state
// 3. Reject unless the requested time is present and available
// 4. Combine date and time into the absolute slot timestamp
// 5. Update in place (id present) or insert with the caller's clinic id
//
// The unique index on (doctor_id, date) backs step 3 up under concurrency:
// when two requests race past the availability check, the second insert
// fails and is reported as an unavailable slot.
func (u *appointmentUsecase) UpsertAppointment(ctx context.Context, req *dto.UpsertAppointmentRequest) (*dto.UpsertAppointmentResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	requestedTime, err := timeslot.Normalize(req.Time)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	// Step 2: never trust a client-supplied availability snapshot; it may be
	// stale by the time of submission. When editing, the appointment's own
	// slot is not counted as booked.
	excludeID := uuid.Nil
	if req.ID != nil {
		excludeID = *req.ID
	}
	slots, err := u.availability.DeriveSlots(ctx, clinicID, req.DoctorID, day, excludeID)
	if err != nil {
		return nil, err
	}

	if !slotIsAvailable(slots, requestedTime) {
		return nil, ErrSlotUnavailable
	}

	slotTimestamp, err := timeslot.Combine(day, requestedTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	if req.ID != nil {
		return u.reschedule(ctx, clinicID, *req.ID, req, slotTimestamp)
	}
	return u.book(ctx, clinicID, req, slotTimestamp)
}

func (u *appointmentUsecase) book(ctx context.Context, clinicID uuid.UUID, req *dto.UpsertAppointmentRequest, slotTimestamp time.Time) (*dto.UpsertAppointmentResponse, error) {
	appointment := &entity.Appointment{
		ClinicID:                clinicID,
		DoctorID:                req.DoctorID,
		PatientID:               req.PatientID,
		Date:                    slotTimestamp,
		AppointmentPriceInCents: req.AppointmentPriceInCents,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		if isUniqueViolation(err, "idx_appointments_doctor_slot") {
			// Lost a race with a concurrent booking of the same slot.
			return nil, ErrSlotUnavailable
		}
		if isForeignKeyViolation(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.invalidateViews(ctx, clinicID)
	u.log.Infof("Appointment booked: id=%s, doctor=%s, slot=%s", appointment.ID, req.DoctorID, slotTimestamp.Format(time.RFC3339))
	return &dto.UpsertAppointmentResponse{AppointmentID: appointment.ID}, nil
}

func (u *appointmentUsecase) reschedule(ctx context.Context, clinicID, appointmentID uuid.UUID, req *dto.UpsertAppointmentRequest, slotTimestamp time.Time) (*dto.UpsertAppointmentResponse, error) {
	// Single clinic-filtered lookup: an appointment owned by another clinic
	// reads as not found.
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// The price stays as snapshotted at booking time; edits never re-price.
	appointment.PatientID = req.PatientID
	appointment.DoctorID = req.DoctorID
	appointment.Date = slotTimestamp

	if err := u.appointmentRepo.Update(ctx, u.db, appointment); err != nil {
		if isUniqueViolation(err, "idx_appointments_doctor_slot") {
			return nil, ErrSlotUnavailable
		}
		if isForeignKeyViolation(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.invalidateViews(ctx, clinicID)
	u.log.Infof("Appointment rescheduled: id=%s, doctor=%s, slot=%s", appointment.ID, req.DoctorID, slotTimestamp.Format(time.RFC3339))
	return &dto.UpsertAppointmentResponse{AppointmentID: appointment.ID}, nil
}

func (u *appointmentUsecase) GetAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAllByClinic(ctx, u.db, clinicID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return err
	}

	affected, err := u.appointmentRepo.Delete(ctx, u.db, appointmentID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.invalidateViews(ctx, clinicID)
	u.log.Infof("Appointment deleted: id=%s", appointmentID)
	return nil
}

// invalidateViews marks the clinic's appointment list and dashboard
// aggregates stale. Failures are logged, not surfaced: the write already
// committed and the cache entries expire on their own.
func (u *appointmentUsecase) invalidateViews(ctx context.Context, clinicID uuid.UUID) {
	if err := u.clinicCache.Invalidate(ctx, clinicID, service.ViewAppointments, service.ViewDashboard); err != nil {
		u.log.Warnf("Failed to invalidate cached views for clinic %s (non-fatal): %+v", clinicID, err)
	}
}

func slotIsAvailable(slots []dto.TimeSlotResponse, requestedTime string) bool {
	for _, slot := range slots {
		if slot.Time == requestedTime {
			return slot.Available
		}
	}
	return false
}

// isUniqueViolation checks if the error is a PostgreSQL unique violation
// on the given constraint
func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation on the given constraint
func isForeignKeyViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
