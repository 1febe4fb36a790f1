package repository

import (
	"context"
	"errors"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Create(doctor).Error
}

// FindByID filters by clinic id in the same query, so a doctor owned by
// another clinic reads as not found.
func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Where("clinic_id = ?", clinicID).Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Doctor{}).Where("clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("Clinic").Save(doctor).Error
}

func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error) {
	affected := db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&entity.Doctor{})
	return affected.RowsAffected, affected.Error
}
