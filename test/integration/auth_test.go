package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"benchracers_backend/internal/models"
	"benchracers_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestSignupAndUnverifiedLogin - регистрация и ожидаемый провал
// логина до подтверждения email
func TestSignupAndUnverifiedLogin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := fmt.Sprintf("signup_%d@test.com", time.Now().UnixNano())

	signupBody := map[string]interface{}{
		"name":     "Новый Пользователь",
		"email":    email,
		"password": "super_password123",
		"region":   "west",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/users/signup", "", signupBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "Registration successful")

	// Логин до верификации должен вернуть 403 EMAIL_NOT_VERIFIED
	loginBody := map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/users/login", "", loginBody)
	assert.Equal(t, http.StatusForbidden, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "EMAIL_NOT_VERIFIED")
}

// TestSignup_DuplicateEmail - повторная регистрация на занятый email
func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := fmt.Sprintf("duplicate_%d@test.com", time.Now().UnixNano())

	err := helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "User One",
		Email:        email,
		PasswordHash: "pass12345",
	})
	assert.NoError(t, err)

	signupBody := map[string]interface{}{
		"name":     "User Two",
		"email":    email,
		"password": "pass12345",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/users/signup", "", signupBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "EMAIL_EXISTS")
}

// TestLogin_WrongPassword - неверный пароль и неизвестный email
// отвечают одинаково
func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := fmt.Sprintf("wrongpass_%d@test.com", time.Now().UnixNano())

	err := helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "Wrong Pass",
		Email:        email,
		PasswordHash: "correct_password",
	})
	assert.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/users/login", "", map[string]interface{}{
		"email":    email,
		"password": "wrong_password",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_CREDENTIALS")

	res2, bodyStr2 := ts.SendRequest(t, "POST", "/api/users/login", "", map[string]interface{}{
		"email":    "nobody@test.com",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)
	assert.Contains(t, bodyStr2, "INVALID_CREDENTIALS")
}

// TestVerifyEmailFlow - верификация по токену открывает логин
func TestVerifyEmailFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := fmt.Sprintf("verify_%d@test.com", time.Now().UnixNano())

	signupBody := map[string]interface{}{
		"name":     "Verify Me",
		"email":    email,
		"password": "super_password123",
	}
	regRes, _ := ts.SendRequest(t, "POST", "/api/users/signup", "", signupBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)

	// Достаем токен напрямую из БД (письма в тестах не уходят)
	var user models.User
	err := ts.DB.Where("email = ?", email).First(&user).Error
	assert.NoError(t, err)
	assert.NotEmpty(t, user.VerificationToken)

	verRes, verBodyStr := ts.SendRequest(t, "GET", "/api/users/verify?token="+user.VerificationToken, "", nil)
	assert.Equal(t, http.StatusOK, verRes.StatusCode)
	assert.Contains(t, verBodyStr, "verified")

	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/users/login", "", map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "token")
}

// TestVerifyEmail_BadToken
func TestVerifyEmail_BadToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/users/verify?token=not-a-real-token", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_TOKEN")
}

// TestGetProfile_Success - "золотой путь" с помощью хелпера
func TestGetProfile_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
	assert.Contains(t, bodyStr, user.Name)
}

// TestGetProfile_NoToken - закрытый маршрут без токена
func TestGetProfile_NoToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestChangePassword_WrongCurrent - при неверном текущем пароле
// хэш не меняется и старый пароль продолжает работать
func TestChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "PUT", "/api/users/change-password", token, map[string]interface{}{
		"currentPassword": "not_the_password",
		"newPassword":     "new_password_123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Старый пароль все еще работает
	logRes, _ := ts.SendRequest(t, "POST", "/api/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
}

// TestPasswordResetFlow - сброс пароля по токену, токен одноразовый
func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/users/forgot-password", "", map[string]interface{}{
		"email": user.Email,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "If an account exists")

	var fresh models.User
	err := ts.DB.Where("email = ?", user.Email).First(&fresh).Error
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.ResetToken)

	resetRes, _ := ts.SendRequest(t, "POST", "/api/users/reset-password", "", map[string]interface{}{
		"token":       fresh.ResetToken,
		"newPassword": "brand_new_pass1",
	})
	assert.Equal(t, http.StatusOK, resetRes.StatusCode)

	// Новый пароль работает
	logRes, _ := ts.SendRequest(t, "POST", "/api/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "brand_new_pass1",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	// Токен погашен, повторное использование отбивается
	resetAgain, _ := ts.SendRequest(t, "POST", "/api/users/reset-password", "", map[string]interface{}{
		"token":       fresh.ResetToken,
		"newPassword": "another_pass_123",
	})
	assert.Equal(t, http.StatusBadRequest, resetAgain.StatusCode)
}

// TestForgotPassword_UnknownEmail - ответ не раскрывает аккаунты
func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/users/forgot-password", "", map[string]interface{}{
		"email": "ghost@test.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "If an account exists")
}

// TestHealthCheck - plaintext ответ без БД
func TestHealthCheck(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, bodyStr := ts.SendRequest(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "healthy", bodyStr)
}
