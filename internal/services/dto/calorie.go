package dto

type RecommendationRequest struct {
	Weight        float64 `json:"weight" validate:"required,gt=0,lt=500"`
	Height        float64 `json:"height" validate:"required,gt=0,lt=300"`
	Age           int     `json:"age" validate:"required,gt=0,lt=130"`
	Gender        string  `json:"gender" validate:"required,oneof=male female"`
	BodyFat       float64 `json:"body_fat" validate:"required,gt=0,lt=100"`
	ActivityLevel string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
}
