package services

import (
	"context"
	"errors"

	"unifit_backend/internal/calorie"
	"unifit_backend/internal/services/dto"
	"unifit_backend/pkg/apperrors"
)

type CalorieService interface {
	Recommend(ctx context.Context, req *dto.RecommendationRequest) (*calorie.Recommendation, error)
}

type CalorieServiceImpl struct{}

func NewCalorieService() CalorieService {
	return &CalorieServiceImpl{}
}

func (s *CalorieServiceImpl) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*calorie.Recommendation, error) {
	rec, err := calorie.Recommend(calorie.RecommendationInput{
		WeightKg:             req.Weight,
		HeightCm:             req.Height,
		AgeYears:             req.Age,
		Gender:               calorie.Gender(req.Gender),
		TargetBodyFatPercent: req.BodyFat,
		ActivityLevel:        calorie.ActivityLevel(req.ActivityLevel),
	})
	if err != nil {
		if errors.Is(err, calorie.ErrUnknownActivityLevel) {
			return nil, apperrors.ValidationError(map[string]string{"activity_level": "unknown activity level"})
		}
		return nil, apperrors.InternalError(err)
	}
	return &rec, nil
}
