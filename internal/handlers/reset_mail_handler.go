package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unifit_backend/internal/email"
	"unifit_backend/internal/logger"
)

// ResetMailHandler is the stateless mail-sending endpoint: it delivers
// a caller-supplied reset code without touching the database. The main
// reset flow generates and stores its own codes; this endpoint exists
// for clients that run the reset state machine themselves.
type ResetMailHandler struct {
	mailer email.Provider
}

func NewResetMailHandler(mailer email.Provider) *ResetMailHandler {
	return &ResetMailHandler{mailer: mailer}
}

func (h *ResetMailHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Registered for every method: the handler owns the 405 answer for
	// anything that is not POST or a CORS preflight.
	rg.Any("/reset-mail", h.Handle)
}

type resetMailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *ResetMailHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	var req resetMailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fields 'email' and 'code' are required"})
		return
	}

	messageID, err := h.mailer.SendPasswordResetCode(req.Email, req.Code)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Reset mail delivery failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent", "message_id": messageID})
}
