package usecase

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository fakes. The usecases never touch the *gorm.DB handle
// themselves, they only pass it through to the repositories, so the fakes
// can ignore it entirely and the tests run against a nil handle.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sessionContext(userID, clinicID uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	if clinicID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.ClinicIDKey, clinicID)
	}
	return ctx
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]entity.Doctor
}

func newFakeDoctorRepo(doctors ...entity.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[uuid.UUID]entity.Doctor)}
	for _, doctor := range doctors {
		repo.doctors[doctor.ID] = doctor
	}
	return repo
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok || doctor.ClinicID != clinicID {
		return nil, nil
	}
	return &doctor, nil
}

func (r *fakeDoctorRepo) FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	for _, doctor := range r.doctors {
		if doctor.ClinicID == clinicID {
			doctors = append(doctors, doctor)
		}
	}
	return doctors, nil
}

func (r *fakeDoctorRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	doctors, _ := r.FindAllByClinic(ctx, db, clinicID)
	return int64(len(doctors)), nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error) {
	doctor, ok := r.doctors[id]
	if !ok || doctor.ClinicID != clinicID {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]entity.Patient
}

func newFakePatientRepo(patients ...entity.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[uuid.UUID]entity.Patient)}
	for _, patient := range patients {
		repo.patients[patient.ID] = patient
	}
	return repo
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Patient, error) {
	patient, ok := r.patients[id]
	if !ok || patient.ClinicID != clinicID {
		return nil, nil
	}
	return &patient, nil
}

func (r *fakePatientRepo) FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	for _, patient := range r.patients {
		if patient.ClinicID == clinicID {
			patients = append(patients, patient)
		}
	}
	return patients, nil
}

func (r *fakePatientRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	patients, _ := r.FindAllByClinic(ctx, db, clinicID)
	return int64(len(patients)), nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error) {
	patient, ok := r.patients[id]
	if !ok || patient.ClinicID != clinicID {
		return 0, nil
	}
	delete(r.patients, id)
	return 1, nil
}

// fakeAppointmentRepo enforces the same (doctor_id, date) uniqueness the
// production index does, reporting violations as pgconn errors. createErr
// and updateErr let a test inject a specific database failure.
type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	createErr    error
	updateErr    error
}

func uniqueSlotViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.appointments {
		if existing.DoctorID == appointment.DoctorID && existing.Date.Equal(appointment.Date) {
			return uniqueSlotViolation()
		}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.appointments = append(r.appointments, *appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.ID == id && appointment.ClinicID == clinicID {
			found := appointment
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorID != doctorID || appointment.ClinicID != clinicID {
			continue
		}
		if appointment.Date.Before(dayStart) || !appointment.Date.Before(dayEnd) {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (r *fakeAppointmentRepo) FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.ClinicID != clinicID {
			continue
		}
		if !matchesFilter(appointment, filter) {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func matchesFilter(appointment entity.Appointment, filter *entity.AppointmentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.StartAt != "" {
		start, err := time.Parse("2006-01-02", filter.StartAt)
		if err == nil && appointment.Date.Before(start) {
			return false
		}
	}
	if filter.EndAt != "" {
		end, err := time.Parse("2006-01-02", filter.EndAt)
		if err == nil && !appointment.Date.Before(end.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

func (r *fakeAppointmentRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error) {
	appointments, _ := r.FindAllByClinic(ctx, db, clinicID, filter)
	return int64(len(appointments)), nil
}

func (r *fakeAppointmentRepo) SumPriceInCents(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error) {
	appointments, _ := r.FindAllByClinic(ctx, db, clinicID, filter)
	var sum int64
	for _, appointment := range appointments {
		sum += int64(appointment.AppointmentPriceInCents)
	}
	return sum, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, existing := range r.appointments {
		if existing.ID != appointment.ID && existing.DoctorID == appointment.DoctorID && existing.Date.Equal(appointment.Date) {
			return uniqueSlotViolation()
		}
	}
	for i, existing := range r.appointments {
		if existing.ID == appointment.ID {
			r.appointments[i] = *appointment
			return nil
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error) {
	for i, appointment := range r.appointments {
		if appointment.ID == id && appointment.ClinicID == clinicID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeClinicCache struct {
	entries     map[string][]byte
	invalidated []string
}

func newFakeClinicCache() *fakeClinicCache {
	return &fakeClinicCache{entries: make(map[string][]byte)}
}

func fakeCacheKey(clinicID uuid.UUID, view string) string {
	return clinicID.String() + ":" + view
}

func (c *fakeClinicCache) Get(ctx context.Context, clinicID uuid.UUID, view string, dest interface{}) (bool, error) {
	payload, ok := c.entries[fakeCacheKey(clinicID, view)]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *fakeClinicCache) Set(ctx context.Context, clinicID uuid.UUID, view string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[fakeCacheKey(clinicID, view)] = payload
	return nil
}

func (c *fakeClinicCache) Invalidate(ctx context.Context, clinicID uuid.UUID, views ...string) error {
	for _, view := range views {
		delete(c.entries, fakeCacheKey(clinicID, view))
		c.invalidated = append(c.invalidated, view)
	}
	return nil
}
