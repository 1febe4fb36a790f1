package usecase

import (
	"context"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	GetPatients(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, patientID uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		ClinicID:    clinicID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
	}

	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAllByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find patients for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	patient.Name = req.Name
	patient.Email = req.Email
	patient.PhoneNumber = req.PhoneNumber
	patient.Sex = req.Sex

	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, patientID uuid.UUID) error {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return err
	}

	affected, err := u.patientRepo.Delete(ctx, u.db, patientID, clinicID)
	if err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", patientID, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}
