package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientRepository is clinic-scoped, same tenancy rules as DoctorRepository.
type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Patient, error)
	FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error)
}
