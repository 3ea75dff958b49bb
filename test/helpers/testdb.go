package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"benchracers_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с автоматическим хешированием пароля.
// По умолчанию пользователь верифицирован.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, db *gorm.DB, name, email, password string) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password, // Сырой пароль, CreateUser захеширует
	}
	err := CreateUser(t, db, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginRandomUser создает пользователя с уникальным email
func CreateAndLoginRandomUser(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, db, "Test User", email, "password123")
}

// CreateAndLoginEditor создает редактора с уникальным email
func CreateAndLoginEditor(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("editor_%d@test.com", time.Now().UnixNano())
	user := &models.User{
		Name:         "Test Editor",
		Email:        email,
		PasswordHash: "password123",
		IsEditor:     true,
	}
	err := CreateUser(t, db, user)
	assert.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин редактора должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)

	return loginResponse.Token, user
}

// CreateEntry создает запись напрямую в БД
func CreateEntry(t *testing.T, db *gorm.DB, ownerEmail, carMake, carModel string) models.Entry {
	entry := models.Entry{
		UserEmail: ownerEmail,
		CarMake:   carMake,
		CarModel:  carModel,
		CarYear:   2020,
		Region:    models.RegionWest,
		Category:  models.CategoryJDM,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую запись: %v", err)
	}
	return entry
}

// CreateComment создает комментарий напрямую в БД
func CreateComment(t *testing.T, db *gorm.DB, entryID, userEmail, text string, parentID *string) models.Comment {
	comment := models.Comment{
		EntryID:   entryID,
		UserEmail: userEmail,
		ParentID:  parentID,
		Text:      text,
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый комментарий: %v", err)
	}
	return comment
}
