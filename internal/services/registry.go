package services

import (
	"benchracers_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	GarageService  GarageService
	ExploreService ExploreService
	CommentService CommentService
	AdminService   AdminService
	EmailService   email.Provider
}
