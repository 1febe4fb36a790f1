package repository

import (
	"context"
	"errors"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND clinic_id = ? AND date >= ? AND date < ?", doctorID, clinicID, dayStart, dayEnd).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx).Where("clinic_id = ?", clinicID)
	query = applyFilter(query, filter)

	err := query.
		Preload("Doctor").Preload("Patient").
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error) {
	var count int64
	query := db.WithContext(ctx).Model(&entity.Appointment{}).Where("clinic_id = ?", clinicID)
	query = applyFilter(query, filter)
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) SumPriceInCents(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error) {
	var total int64
	query := db.WithContext(ctx).Model(&entity.Appointment{}).Where("clinic_id = ?", clinicID)
	query = applyFilter(query, filter)
	err := query.Select("COALESCE(SUM(appointment_price_in_cents), 0)").Scan(&total).Error
	return total, err
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Clinic", "Doctor", "Patient").Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error) {
	affected := db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

func applyFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter != nil {
		if filter.StartAt != "" {
			query = query.Where("date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("date < (?::date + 1)", filter.EndAt)
		}
	}
	return query
}
