package dto

// UpdateProfileRequest uses pointers so absent fields are left untouched.
type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	University  *string  `json:"university"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=male female other prefer_not"`
	Height      *float64 `json:"height" validate:"omitempty,gt=0,lt=300"`
	Weight      *float64 `json:"weight" validate:"omitempty,gt=0,lt=500"`
	FitnessGoal *string  `json:"fitness_goal"`
	SNSLink     *string  `json:"sns_link"`
}
