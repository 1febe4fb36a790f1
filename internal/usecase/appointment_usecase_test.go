package usecase

import (
	"testing"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	uc              AppointmentUsecase
	availability    AvailabilityUsecase
	appointmentRepo *fakeAppointmentRepo
	cache           *fakeClinicCache
	clinicID        uuid.UUID
	doctor          entity.Doctor
	patientID       uuid.UUID
}

func newAppointmentFixture() *appointmentFixture {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	appointmentRepo := &fakeAppointmentRepo{}
	cache := newFakeClinicCache()
	log := testLogger()

	availability := NewAvailabilityUsecase(nil, log, newFakeDoctorRepo(doctor), appointmentRepo)
	uc := NewAppointmentUsecase(nil, log, appointmentRepo, availability, cache)

	return &appointmentFixture{
		uc:              uc,
		availability:    availability,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		clinicID:        clinicID,
		doctor:          doctor,
		patientID:       uuid.New(),
	}
}

func (f *appointmentFixture) bookingRequest(date, timeOfDay string) *dto.UpsertAppointmentRequest {
	return &dto.UpsertAppointmentRequest{
		PatientID:               f.patientID,
		DoctorID:                f.doctor.ID,
		Date:                    date,
		Time:                    timeOfDay,
		AppointmentPriceInCents: f.doctor.AppointmentPriceInCents,
	}
}

func TestUpsertAppointmentBooksFreeSlot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	result, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.AppointmentID)

	require.Len(t, f.appointmentRepo.appointments, 1)
	stored := f.appointmentRepo.appointments[0]
	assert.Equal(t, f.clinicID, stored.ClinicID)
	assert.Equal(t, time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC), stored.Date)
	assert.Equal(t, 15000, stored.AppointmentPriceInCents)

	assert.Contains(t, f.cache.invalidated, service.ViewAppointments)
	assert.Contains(t, f.cache.invalidated, service.ViewDashboard)
}

func TestUpsertAppointmentZeroesSeconds(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "10:30:00"))
	require.NoError(t, err)

	stored := f.appointmentRepo.appointments[0]
	assert.Zero(t, stored.Date.Second())
	assert.Zero(t, stored.Date.Nanosecond())
	assert.Equal(t, 10, stored.Date.Hour())
	assert.Equal(t, 30, stored.Date.Minute())
}

func TestUpsertAppointmentRejectsBookedSlot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	_, err = f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, f.appointmentRepo.appointments, 1, "rejected booking must not write")
}

func TestUpsertAppointmentRejectsSlotOutsideWindow(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	// 14:00 is past the doctor's 12:00 cutoff.
	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "14:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Sunday is outside the doctor's weekday range.
	_, err = f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-04", "09:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	assert.Empty(t, f.appointmentRepo.appointments)
}

func TestUpsertAppointmentFlipsAvailability(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	result, err := f.availability.GetAvailableTimes(ctx, f.doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)
	for _, slot := range result.Slots {
		if slot.Time == "09:00:00" {
			assert.False(t, slot.Available)
		}
	}
}

func TestUpsertAppointmentLostRaceReportsSlotUnavailable(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	// The availability check passes, but a concurrent booking commits first
	// and the insert trips the unique index.
	f.appointmentRepo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUpsertAppointmentUnknownPatient(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	f.appointmentRepo.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_patient"}

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestUpsertAppointmentRescheduleKeepsOwnSlot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	// Re-submitting the same slot for the same appointment is a no-op edit,
	// not a conflict with itself.
	req := f.bookingRequest("2026-01-07", "09:00")
	req.ID = &created.AppointmentID
	result, err := f.uc.UpsertAppointment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created.AppointmentID, result.AppointmentID)
	assert.Len(t, f.appointmentRepo.appointments, 1)
}

func TestUpsertAppointmentRescheduleMovesSlot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	req := f.bookingRequest("2026-01-07", "11:30")
	req.ID = &created.AppointmentID
	_, err = f.uc.UpsertAppointment(ctx, req)
	require.NoError(t, err)

	stored := f.appointmentRepo.appointments[0]
	assert.Equal(t, time.Date(2026, 1, 7, 11, 30, 0, 0, time.UTC), stored.Date)

	// The old slot is free again.
	result, err := f.availability.GetAvailableTimes(ctx, f.doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)
	for _, slot := range result.Slots {
		assert.Equal(t, slot.Time != "11:30:00", slot.Available, "slot %s", slot.Time)
	}
}

func TestUpsertAppointmentRescheduleKeepsPriceSnapshot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	// The doctor's price changed since booking; the edit must not re-price.
	req := f.bookingRequest("2026-01-07", "10:00")
	req.ID = &created.AppointmentID
	req.AppointmentPriceInCents = 99999
	_, err = f.uc.UpsertAppointment(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 15000, f.appointmentRepo.appointments[0].AppointmentPriceInCents)
}

func TestUpsertAppointmentRescheduleMasksOtherClinics(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)
	before := f.appointmentRepo.appointments[0]

	// Editing an id that exists but belongs to another clinic reads the same
	// as editing a nonexistent one, and nothing changes. The doctor still has
	// to be visible from the caller's clinic for availability to resolve, so
	// the foreign session gets its own doctor.
	otherClinic := uuid.New()
	otherDoctor := weekdayDoctor(otherClinic)
	foreignAvailability := NewAvailabilityUsecase(nil, testLogger(), newFakeDoctorRepo(otherDoctor), f.appointmentRepo)
	foreignUC := NewAppointmentUsecase(nil, testLogger(), f.appointmentRepo, foreignAvailability, newFakeClinicCache())

	foreignCtx := sessionContext(uuid.New(), otherClinic)
	req := &dto.UpsertAppointmentRequest{
		ID:        &created.AppointmentID,
		PatientID: uuid.New(),
		DoctorID:  otherDoctor.ID,
		Date:      "2026-01-07",
		Time:      "10:00",
	}
	_, err = foreignUC.UpsertAppointment(foreignCtx, req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, before, f.appointmentRepo.appointments[0], "masked edit must not modify rows")
}

func TestUpsertAppointmentRejectsBadInput(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	_, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("07/01/2026", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "9am"))
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestDeleteAppointment(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteAppointment(ctx, created.AppointmentID))
	assert.Empty(t, f.appointmentRepo.appointments)

	err = f.uc.DeleteAppointment(ctx, created.AppointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDeleteAppointmentMasksOtherClinics(t *testing.T) {
	f := newAppointmentFixture()
	ctx := sessionContext(uuid.New(), f.clinicID)

	created, err := f.uc.UpsertAppointment(ctx, f.bookingRequest("2026-01-07", "09:00"))
	require.NoError(t, err)

	foreignCtx := sessionContext(uuid.New(), uuid.New())
	err = f.uc.DeleteAppointment(foreignCtx, created.AppointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Len(t, f.appointmentRepo.appointments, 1)
}
