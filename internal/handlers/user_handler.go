package handlers

import (
	"net/http"

	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler - аутентификация и профиль: /api/users
type UserHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, authService services.AuthService, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
	}
}

// RegisterRoutes регистрирует маршруты пользователей
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)
		users.GET("/verify", h.VerifyEmail)
		users.POST("/forgot-password", h.ForgotPassword)
		users.POST("/reset-password", h.ResetPassword)
	}

	me := rg.Group("/users")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/profile", h.GetProfile)
		me.PUT("/profile", h.UpdateProfile)
		me.PUT("/change-password", h.ChangePassword)
		me.GET("/awards", h.GetAwards)
		me.DELETE("/account", h.DeleteAccount)
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	user, err := h.authService.Signup(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.authService.Login(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyEmail подтверждает аккаунт по токену из письма: GET /users/verify?token=...
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")

	db := h.GetDB(c)
	if err := h.authService.VerifyEmail(c.Request.Context(), db, token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in."})
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.authService.RequestPasswordReset(c.Request.Context(), db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Один и тот же ответ для известного и неизвестного email
	c.JSON(http.StatusOK, gin.H{"message": "If an account exists, a password reset email has been sent."})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.authService.ResetPassword(c.Request.Context(), db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset."})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	user, err := h.userService.GetProfile(c.Request.Context(), db, email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	user, err := h.userService.UpdateProfile(c.Request.Context(), db, email, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.authService.ChangePassword(c.Request.Context(), db, email, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}

func (h *UserHandler) GetAwards(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	awards, err := h.userService.GetAwards(c.Request.Context(), db, email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.DeleteAccount(c.Request.Context(), db, email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted."})
}
