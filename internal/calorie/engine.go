// Package calorie implements the BMR/TDEE/calorie-target model. All
// functions are pure and deterministic: no I/O, no hidden state.
package calorie

import (
	"errors"
	"fmt"
	"math"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// MinTargetCalories is a hard safety floor for weight-loss targets.
const MinTargetCalories = 1200

var ErrUnknownActivityLevel = errors.New("unknown activity level")

// activityMultipliers scales BMR into total daily expenditure.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// BMR computes the basal metabolic rate using the Mifflin-St Jeor
// formula. The formula only defines male and female branches; any other
// gender value falls into the female branch, which is a documented
// limitation of the model, not a supported case.
func BMR(weightKg, heightCm float64, ageYears int, gender Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// TDEE scales BMR by the activity multiplier, rounded to the nearest
// whole kcal. An unknown level is a caller contract violation.
func TDEE(bmr float64, level ActivityLevel) (int, error) {
	multiplier, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivityLevel, level)
	}
	return int(math.Round(bmr * multiplier)), nil
}

// TargetCalories derives the daily calorie target from TDEE and goal.
// The 1200 kcal floor must hold even for very low TDEE values.
func TargetCalories(tdee int, goal Goal) int {
	switch goal {
	case GoalLose:
		target := tdee - 500
		if target < MinTargetCalories {
			return MinTargetCalories
		}
		return target
	case GoalGain:
		return tdee + 300
	default:
		return tdee
	}
}

// GoalForBodyFat derives the goal from the target body-fat percentage
// using gender-specific thresholds.
func GoalForBodyFat(targetBodyFatPercent float64, gender Gender) Goal {
	if gender == GenderMale {
		switch {
		case targetBodyFatPercent <= 10:
			return GoalLose
		case targetBodyFatPercent >= 20:
			return GoalGain
		default:
			return GoalMaintain
		}
	}
	switch {
	case targetBodyFatPercent <= 18:
		return GoalLose
	case targetBodyFatPercent >= 28:
		return GoalGain
	default:
		return GoalMaintain
	}
}

// RecommendationInput holds the body metrics the engine needs. The
// caller (the onboarding form) is responsible for positive height,
// weight and age; the engine trusts well-formed input.
type RecommendationInput struct {
	WeightKg             float64
	HeightCm             float64
	AgeYears             int
	Gender               Gender
	TargetBodyFatPercent float64
	ActivityLevel        ActivityLevel
}

// Recommendation is a derived value object, recomputed on demand and
// never persisted.
type Recommendation struct {
	BMR            int    `json:"bmr"`
	TDEE           int    `json:"tdee"`
	TargetCalories int    `json:"target_calories"`
	Goal           Goal   `json:"goal"`
	Message        string `json:"message"`
}

// Recommend computes a full calorie recommendation. ActivityLevel
// defaults to moderate when empty.
func Recommend(in RecommendationInput) (Recommendation, error) {
	if in.ActivityLevel == "" {
		in.ActivityLevel = ActivityModerate
	}

	bmr := BMR(in.WeightKg, in.HeightCm, in.AgeYears, in.Gender)
	tdee, err := TDEE(bmr, in.ActivityLevel)
	if err != nil {
		return Recommendation{}, err
	}

	goal := GoalForBodyFat(in.TargetBodyFatPercent, in.Gender)

	return Recommendation{
		BMR:            int(math.Round(bmr)),
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, goal),
		Goal:           goal,
		Message:        message(goal, in.TargetBodyFatPercent),
	}, nil
}

func message(goal Goal, targetBodyFatPercent float64) string {
	switch goal {
	case GoalLose:
		return fmt.Sprintf("To reach %.0f%% body fat you need a calorie deficit. Stay under your target and keep your protein intake high.", targetBodyFatPercent)
	case GoalGain:
		return fmt.Sprintf("To reach %.0f%% body fat you need a calorie surplus. Eat above maintenance and focus on strength training.", targetBodyFatPercent)
	default:
		return fmt.Sprintf("Your target of %.0f%% body fat is close to where you are. Eat at maintenance and keep training consistently.", targetBodyFatPercent)
	}
}
