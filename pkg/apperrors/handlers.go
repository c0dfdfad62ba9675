package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unifit_backend/internal/logger"
)

// ErrorResponse is the standard error envelope returned by the API.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an error response to the gin context. Unknown error
// types are hidden behind a generic internal error so implementation
// details never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
