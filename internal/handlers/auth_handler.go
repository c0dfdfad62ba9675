package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unifit_backend/internal/services"
	"unifit_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/request-password-reset", h.RequestPasswordReset)
		auth.POST("/verify-reset-code", h.VerifyResetCode)
		auth.POST("/reset-password", h.ResetPassword)
		auth.DELETE("/account", h.DeleteAccount)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.SignInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.SignOut(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me reports the session slot. A signed-out state is a normal answer,
// not an error.
func (h *AuthHandler) Me(c *gin.Context) {
	current := h.authService.CurrentUser(c.Request.Context())
	if current == nil {
		c.JSON(http.StatusOK, gin.H{"signed_in": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signed_in": true, "user": current})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent"})
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req dto.VerifyResetCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyResetCode(c.Request.Context(), req.Email, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), req.Email, req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
