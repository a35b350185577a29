package service

import (
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	AdminRepo *repository.AdminRepository
	Cfg       *config.Config
}

func NewAuthService(adminRepo *repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		AdminRepo: adminRepo,
		Cfg:       cfg,
	}
}

// Login verifies admin credentials and returns a signed session token.
func (s *AuthService) Login(email, password string) (string, *model.Admin, error) {
	admin, err := s.AdminRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	expiration := time.Duration(s.Cfg.JWT.ExpireHours) * time.Hour
	token, err := util.GenerateAdminJWT(admin.ID, admin.Email, s.Cfg.JWT.Secret, expiration)
	if err != nil {
		return "", nil, err
	}

	return token, admin, nil
}
