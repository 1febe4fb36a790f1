package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository is clinic-scoped. FindByDoctorAndDay returns the
// doctor's appointments whose timestamp falls on one calendar day; the
// availability calculator derives the booked slot set from it on every call.
type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (*entity.Appointment, error)
	FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Appointment, error)
	FindAllByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error)
	SumPriceInCents(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) (int64, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	Delete(ctx context.Context, db *gorm.DB, id, clinicID uuid.UUID) (int64, error)
}
