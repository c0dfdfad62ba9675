package services

import "unifit_backend/internal/email"

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	CalorieService CalorieService
	EmailService   email.Provider
}
