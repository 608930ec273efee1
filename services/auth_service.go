package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/garciajoao467/app-nutri/models"
	"github.com/garciajoao467/app-nutri/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultCalorieTarget = 2000

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.SugaredLogger
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(email, password string, calorieTarget float64) (*models.User, error) {
	s.log.Infow("registering user", "email", email)

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, &ServiceError{
			Kind:    KindEmailRegistered,
			Message: "email already registered",
			Status:  http.StatusBadRequest,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistenceError(err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, persistenceError(err)
	}

	if calorieTarget <= 0 {
		calorieTarget = defaultCalorieTarget
	}
	user := &models.User{
		Email:              email,
		PasswordHash:       hash,
		DailyCalorieTarget: calorieTarget,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, persistenceError(err)
	}

	s.log.Infow("user registered", "email", email, "id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the user's
// email as subject.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		s.log.Warnw("login failed, unknown email", "email", email)
		return "", invalidCredentials()
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warnw("login failed, wrong password", "email", email)
		return "", invalidCredentials()
	}

	token, err := utils.GenerateJWT(user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", &ServiceError{
			Kind:    KindPersistence,
			Message: "could not generate token",
			Status:  http.StatusInternalServerError,
			cause:   err,
		}
	}

	s.log.Infow("login successful", "email", email)
	return token, nil
}

func invalidCredentials() *ServiceError {
	return &ServiceError{
		Kind:    KindInvalidCredentials,
		Message: "incorrect email or password",
		Status:  http.StatusUnauthorized,
	}
}
