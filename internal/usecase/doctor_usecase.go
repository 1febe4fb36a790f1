package usecase

import (
	"context"
	"errors"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidWeekdayRange = errors.New("available_from_weekday must not be after available_to_weekday")
	ErrInvalidTimeWindow   = errors.New("available_from_time must not be after available_to_time")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	fromTime, toTime, err := validateAvailability(req)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		ClinicID:                clinicID,
		Name:                    req.Name,
		Specialty:               req.Specialty,
		AvailableFromWeekday:    req.AvailableFromWeekday,
		AvailableToWeekday:      req.AvailableToWeekday,
		AvailableFromTime:       fromTime,
		AvailableToTime:         toTime,
		AppointmentPriceInCents: req.AppointmentPriceInCents,
	}

	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAllByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctors for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	fromTime, toTime, err := validateAvailability(req)
	if err != nil {
		return nil, err
	}

	doctor.Name = req.Name
	doctor.Specialty = req.Specialty
	doctor.AvailableFromWeekday = req.AvailableFromWeekday
	doctor.AvailableToWeekday = req.AvailableToWeekday
	doctor.AvailableFromTime = fromTime
	doctor.AvailableToTime = toTime
	doctor.AppointmentPriceInCents = req.AppointmentPriceInCents

	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return err
	}

	affected, err := u.doctorRepo.Delete(ctx, u.db, doctorID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %s: %+v", doctorID, err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

// validateAvailability normalizes the daily window to "HH:MM:SS" and checks
// the ordering invariants: from-weekday <= to-weekday (no wraparound across
// the week boundary) and from-time <= to-time.
func validateAvailability(req *dto.UpsertDoctorRequest) (string, string, error) {
	if req.AvailableFromWeekday > req.AvailableToWeekday {
		return "", "", ErrInvalidWeekdayRange
	}

	fromTime, err := timeslot.Normalize(req.AvailableFromTime)
	if err != nil {
		return "", "", ErrInvalidTimeFormat
	}
	toTime, err := timeslot.Normalize(req.AvailableToTime)
	if err != nil {
		return "", "", ErrInvalidTimeFormat
	}
	if fromTime > toTime {
		return "", "", ErrInvalidTimeWindow
	}

	return fromTime, toTime, nil
}

// requireClinic resolves the session gates shared by all clinic-scoped
// operations.
func requireClinic(ctx context.Context) (uuid.UUID, error) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		return uuid.Nil, ErrUnauthorized
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrClinicNotFound
	}
	return clinicID, nil
}
