package repositories

import (
	"errors"
	"time"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdatePassword(db *gorm.DB, email, passwordHash string) error
	UpdateProfile(db *gorm.DB, email string, fields map[string]interface{}) error
	VerifyUser(db *gorm.DB, email string) error
	SetVerificationToken(db *gorm.DB, email, token string) error
	Delete(db *gorm.DB, email string) error

	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)

	// Admin operations
	FindAll(db *gorm.DB, limit, offset int) ([]models.User, error)
	CountAll(db *gorm.DB) (int64, error)
	SetEditorFlag(db *gorm.DB, email string, isEditor bool) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(&models.User{}).Where("email = ?", user.Email).Updates(map[string]interface{}{
		"name":               user.Name,
		"region":             user.Region,
		"is_verified":        user.IsVerified,
		"is_editor":          user.IsEditor,
		"verification_token": user.VerificationToken,
		"reset_token":        user.ResetToken,
		"reset_token_exp":    user.ResetTokenExp,
		"profile_photo_key":  user.ProfilePhotoKey,
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, email, passwordHash string) error {
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, email string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) VerifyUser(db *gorm.DB, email string) error {
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetVerificationToken перезаписывает токен верификации.
// Логин неверифицированного пользователя выдает свежий токен.
func (r *UserRepositoryImpl) SetVerificationToken(db *gorm.DB, email, token string) error {
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"verification_token": token,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, email string) error {
	// FK-каскады снесут записи, фото, голоса и комментарии
	result := db.Where("email = ?", email).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("verification_token = ? AND verification_token != ''", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByResetToken находит пользователя по непросроченному токену сброса
func (r *UserRepositoryImpl) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("reset_token = ? AND reset_token != '' AND reset_token_exp > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Admin operations

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) SetEditorFlag(db *gorm.DB, email string, isEditor bool) error {
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"is_editor":  isEditor,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
