package usecase

import (
	"context"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// dashboardCacheTTL bounds staleness when an invalidation is lost.
const dashboardCacheTTL = 5 * time.Minute

type DashboardUsecase interface {
	// GetDashboard aggregates the clinic's figures. A non-empty filter
	// restricts the appointment count and revenue to the date range.
	GetDashboard(ctx context.Context, filter *entity.AppointmentFilter) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	clinicCache     service.ClinicCache
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	clinicCache service.ClinicCache,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		clinicCache:     clinicCache,
	}
}

// GetDashboard returns the clinic's aggregate figures. The unfiltered
// snapshot is cached per clinic and invalidated whenever an appointment is
// written, so a hit never serves numbers from before the latest booking.
// Range-filtered requests bypass the cache.
func (u *dashboardUsecase) GetDashboard(ctx context.Context, filter *entity.AppointmentFilter) (*dto.DashboardResponse, error) {
	clinicID, err := requireClinic(ctx)
	if err != nil {
		return nil, err
	}

	ranged := filter != nil && (filter.StartAt != "" || filter.EndAt != "")
	if !ranged {
		filter = nil
		var cached dto.DashboardResponse
		hit, err := u.clinicCache.Get(ctx, clinicID, service.ViewDashboard, &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	doctorCount, err := u.doctorRepo.CountByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to count doctors for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	patientCount, err := u.patientRepo.CountByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to count patients for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	appointmentCount, err := u.appointmentRepo.CountByClinic(ctx, u.db, clinicID, filter)
	if err != nil {
		u.log.Warnf("Failed to count appointments for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	todayCount, err := u.appointmentRepo.CountByClinic(ctx, u.db, clinicID, &entity.AppointmentFilter{StartAt: today, EndAt: today})
	if err != nil {
		u.log.Warnf("Failed to count today's appointments for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	revenueInCents, err := u.appointmentRepo.SumPriceInCents(ctx, u.db, clinicID, filter)
	if err != nil {
		u.log.Warnf("Failed to sum revenue for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	dashboard := &dto.DashboardResponse{
		TotalRevenueInCents:   revenueInCents,
		TotalRevenue:          centsToCurrency(revenueInCents),
		DoctorCount:           doctorCount,
		PatientCount:          patientCount,
		AppointmentCount:      appointmentCount,
		TodayAppointmentCount: todayCount,
	}

	if !ranged {
		if err := u.clinicCache.Set(ctx, clinicID, service.ViewDashboard, dashboard, dashboardCacheTTL); err != nil {
			u.log.Warnf("Failed to cache dashboard for clinic %s (non-fatal): %+v", clinicID, err)
		}
	}

	return dashboard, nil
}

// centsToCurrency renders an integer cent amount as currency units with two
// decimal places, e.g. 123450 -> "1234.50".
func centsToCurrency(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
