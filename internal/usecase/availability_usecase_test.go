package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayDoctor(clinicID uuid.UUID) entity.Doctor {
	return entity.Doctor{
		ID:                      uuid.New(),
		ClinicID:                clinicID,
		Name:                    "Dr. Helena Souza",
		Specialty:               "Cardiology",
		AvailableFromWeekday:    1, // Monday
		AvailableToWeekday:      5, // Friday
		AvailableFromTime:       "08:00:00",
		AvailableToTime:         "12:00:00",
		AppointmentPriceInCents: 15000,
	}
}

func newAvailabilityFixture(doctors ...entity.Doctor) (AvailabilityUsecase, *fakeAppointmentRepo) {
	appointmentRepo := &fakeAppointmentRepo{}
	uc := NewAvailabilityUsecase(nil, testLogger(), newFakeDoctorRepo(doctors...), appointmentRepo)
	return uc, appointmentRepo
}

func TestGetAvailableTimesWithinWindow(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, _ := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	// 2026-01-07 is a Wednesday.
	result, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)

	expected := []string{
		"08:00:00", "08:30:00", "09:00:00", "09:30:00", "10:00:00",
		"10:30:00", "11:00:00", "11:30:00", "12:00:00",
	}
	require.Len(t, result.Slots, len(expected))
	for i, slot := range result.Slots {
		assert.Equal(t, expected[i], slot.Time)
		assert.True(t, slot.Available)
	}
}

func TestGetAvailableTimesOffDayIsEmpty(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, _ := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	// 2026-01-04 is a Sunday, outside the Monday..Friday range.
	result, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-04")
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestGetAvailableTimesMarksBookedSlot(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, appointmentRepo := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	appointmentRepo.appointments = []entity.Appointment{{
		ID:       uuid.New(),
		ClinicID: clinicID,
		DoctorID: doctor.ID,
		Date:     time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC),
	}}

	result, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)

	for _, slot := range result.Slots {
		if slot.Time == "09:00:00" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available, "slot %s", slot.Time)
		}
	}
}

func TestGetAvailableTimesIsIdempotent(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, appointmentRepo := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	first, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)
	second, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-07")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, appointmentRepo.appointments, "a query must not write")
}

func TestGetAvailableTimesMissingInputIsEmpty(t *testing.T) {
	clinicID := uuid.New()
	uc, _ := newAvailabilityFixture(weekdayDoctor(clinicID))
	ctx := sessionContext(uuid.New(), clinicID)

	for _, tc := range []struct{ doctorID, date string }{
		{"", "2026-01-07"},
		{uuid.New().String(), ""},
		{"", ""},
	} {
		result, err := uc.GetAvailableTimes(ctx, tc.doctorID, tc.date)
		require.NoError(t, err)
		assert.Empty(t, result.Slots)
	}
}

func TestGetAvailableTimesSessionGates(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, _ := newAvailabilityFixture(doctor)

	_, err := uc.GetAvailableTimes(context.Background(), doctor.ID.String(), "2026-01-07")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Authenticated but not yet bound to a clinic.
	_, err = uc.GetAvailableTimes(sessionContext(uuid.New(), uuid.Nil), doctor.ID.String(), "2026-01-07")
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestGetAvailableTimesUnknownDoctor(t *testing.T) {
	clinicID := uuid.New()
	uc, _ := newAvailabilityFixture(weekdayDoctor(clinicID))
	ctx := sessionContext(uuid.New(), clinicID)

	_, err := uc.GetAvailableTimes(ctx, uuid.New().String(), "2026-01-07")
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	// A malformed id cannot name any doctor.
	_, err = uc.GetAvailableTimes(ctx, "not-a-uuid", "2026-01-07")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetAvailableTimesMasksOtherClinicsDoctor(t *testing.T) {
	doctor := weekdayDoctor(uuid.New())
	uc, _ := newAvailabilityFixture(doctor)

	// The session belongs to a different clinic than the doctor.
	ctx := sessionContext(uuid.New(), uuid.New())
	_, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "2026-01-07")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetAvailableTimesRejectsBadDate(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, _ := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	_, err := uc.GetAvailableTimes(ctx, doctor.ID.String(), "07/01/2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestDeriveSlotsExcludesOwnAppointment(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	uc, appointmentRepo := newAvailabilityFixture(doctor)
	ctx := sessionContext(uuid.New(), clinicID)

	appointmentID := uuid.New()
	appointmentRepo.appointments = []entity.Appointment{{
		ID:       appointmentID,
		ClinicID: clinicID,
		DoctorID: doctor.ID,
		Date:     time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC),
	}}

	day := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	slots, err := uc.DeriveSlots(ctx, clinicID, doctor.ID, day, appointmentID)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.True(t, slot.Available, "slot %s", slot.Time)
	}
}
