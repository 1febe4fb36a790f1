package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorRepository is clinic-scoped: lookups take the caller's clinic id so
// that rows owned by another tenant are indistinguishable from absent rows.
type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Doctor, error)
	FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error)
}
