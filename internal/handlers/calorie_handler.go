package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unifit_backend/internal/services"
	"unifit_backend/internal/services/dto"
)

type CalorieHandler struct {
	*BaseHandler
	calorieService services.CalorieService
}

func NewCalorieHandler(base *BaseHandler, calorieService services.CalorieService) *CalorieHandler {
	return &CalorieHandler{
		BaseHandler:    base,
		calorieService: calorieService,
	}
}

func (h *CalorieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	calories := rg.Group("/calories")
	{
		calories.POST("/recommendation", h.Recommend)
	}
}

func (h *CalorieHandler) Recommend(c *gin.Context) {
	var req dto.RecommendationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	rec, err := h.calorieService.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
