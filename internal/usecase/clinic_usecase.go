package usecase

import (
	"context"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ClinicUsecase interface {
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.CreateClinicResponse, error)
}

type clinicUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	clinicRepo  repository.ClinicRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	clinicRepo repository.ClinicRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) ClinicUsecase {
	return &clinicUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		clinicRepo:  clinicRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

// CreateClinic provisions a tenant and binds the current user to it. A fresh
// token pair is issued because the clinic id travels in the JWT claims; the
// caller must switch to it to act within the new clinic.
func (u *clinicUsecase) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.CreateClinicResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	clinic := &entity.Clinic{Name: req.Name}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.clinicRepo.Create(ctx, tx, clinic); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	user.ClinicID = &clinic.ID
	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to bind user %s to clinic %s: %+v", userID, clinic.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	tokens, err := issueTokenPair(ctx, u.jwtService, u.redisClient, u.log, user)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Clinic created: id=%s, owner=%s", clinic.ID, userID)
	return &dto.CreateClinicResponse{
		Clinic: *converter.ClinicToResponse(clinic),
		Tokens: *tokens,
	}, nil
}
