package services

import (
	"context"
	"errors"
	"time"

	"benchracers_backend/internal/auth"
	"benchracers_backend/internal/email"
	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// AuthService - регистрация, вход и восстановление доступа
type AuthService interface {
	Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error
	ChangePassword(ctx context.Context, db *gorm.DB, userEmail string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
	emailer  email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailer email.Provider) AuthService {
	return &authService{
		userRepo: userRepo,
		emailer:  emailer,
	}
}

// Signup создает неверифицированный аккаунт и отправляет письмо
// с токеном подтверждения. Ошибка отправки письма не откатывает
// регистрацию: токен можно перевыпустить повторным логином.
func (s *authService) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		Name:              req.Name,
		PasswordHash:      hash,
		Region:            req.Region,
		VerificationToken: auth.GenerateRandomToken(),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.emailer.SendVerification(user.Email, user.VerificationToken); err != nil {
		logger.CtxWithError(ctx, "Failed to send verification email", err, "email", user.Email)
	}

	result := dto.UserFromModel(user)
	return &result, nil
}

// Login проверяет пару email/пароль. Неверный email и неверный
// пароль отвечают одинаково, чтобы не раскрывать существование
// аккаунта. Для неподтвержденного email перевыпускаем токен.
func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		token := auth.GenerateRandomToken()
		if err := s.userRepo.SetVerificationToken(db, user.Email, token); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.emailer.SendVerification(user.Email, token); err != nil {
			logger.CtxWithError(ctx, "Failed to resend verification email", err, "email", user.Email)
		}
		return nil, apperrors.ErrEmailNotVerified
	}

	token, err := auth.GenerateToken(user.Email, user.Name, user.IsEditor)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User logged in", "email", user.Email)
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserFromModel(user),
	}, nil
}

// VerifyEmail подтверждает аккаунт по токену из письма
func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	if token == "" {
		return apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.VerifyUser(db, user.Email); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Email verified", "email", user.Email)
	return nil
}

// RequestPasswordReset выдает reset-токен. Для неизвестного email
// отвечаем так же, как для известного - без раскрытия аккаунтов.
func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token := auth.GenerateRandomToken()
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emailer.SendPasswordReset(user.Email, token); err != nil {
		logger.CtxWithError(ctx, "Failed to send password reset email", err, "email", user.Email)
	}

	return nil
}

// ResetPassword меняет пароль по действующему reset-токену
// и гасит токен, чтобы ссылка была одноразовой.
func (s *authService) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Password reset completed", "email", user.Email)
	return nil
}

// ChangePassword меняет пароль авторизованного пользователя.
// При неверном текущем пароле хэш остается нетронутым.
func (s *authService) ChangePassword(ctx context.Context, db *gorm.DB, userEmail string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.Email, hash); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}
