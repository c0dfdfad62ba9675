package dto

import "unifit_backend/internal/models"

type SignUpRequest struct {
	Email      string `json:"email" validate:"required,plain_email"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name"`
	University string `json:"university"`
	Gender     string `json:"gender" validate:"omitempty,oneof=male female other prefer_not"`
}

type SignInRequest struct {
	Email      string `json:"email" validate:"required,plain_email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type SignInResponse struct {
	AccessToken string             `json:"access_token"`
	User        *models.PublicUser `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,plain_email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" validate:"required,plain_email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,plain_email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required"`
}

type DeleteAccountRequest struct {
	Email    string `json:"email" validate:"required,plain_email"`
	Password string `json:"password" validate:"required"`
}
