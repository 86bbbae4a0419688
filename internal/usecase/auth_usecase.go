package usecase

import (
	"context"
	"errors"

	"clinic-booking-bot/config"
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthUsecase authenticates the single fixed admin account of the catalog
// REST API. There are no end-user accounts; bot users are anonymous
// Telegram IDs checked against the admin allow-list elsewhere.
type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authUsecase struct {
	log        *logrus.Logger
	admin      config.AdminConfig
	jwtService *jwt.JWTService
}

func NewAuthUsecase(log *logrus.Logger, admin config.AdminConfig, jwtService *jwt.JWTService) AuthUsecase {
	return &authUsecase{
		log:        log,
		admin:      admin,
		jwtService: jwtService,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username != u.admin.Username {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.admin.PasswordHash), []byte(req.Password)); err != nil {
		u.log.Warnf("Failed admin login attempt for user %s", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		u.log.Errorf("Failed to generate access token: %+v", err)
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
