package calorie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR_MifflinStJeor(t *testing.T) {
	// 10*70 + 6.25*175 - 5*25 + 5 = 1673.75
	assert.InDelta(t, 1673.75, BMR(70, 175, 25, GenderMale), 1e-9)

	// 10*60 + 6.25*165 - 5*25 - 161 = 1301.25
	assert.InDelta(t, 1301.25, BMR(60, 165, 25, GenderFemale), 1e-9)
}

func TestTDEE_Multipliers(t *testing.T) {
	cases := []struct {
		level ActivityLevel
		want  int
	}{
		{ActivitySedentary, 1920},  // 1600 * 1.2
		{ActivityLight, 2200},      // 1600 * 1.375
		{ActivityModerate, 2480},   // 1600 * 1.55
		{ActivityActive, 2760},     // 1600 * 1.725
		{ActivityVeryActive, 3040}, // 1600 * 1.9
	}

	for _, tc := range cases {
		got, err := TDEE(1600, tc.level)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "level %s", tc.level)
	}
}

func TestTDEE_RoundsToNearest(t *testing.T) {
	// 1673.75 * 1.55 = 2594.3125 -> 2594
	got, err := TDEE(1673.75, ActivityModerate)
	require.NoError(t, err)
	assert.Equal(t, 2594, got)
}

func TestTDEE_UnknownLevel(t *testing.T) {
	_, err := TDEE(1600, "couch_olympics")
	assert.ErrorIs(t, err, ErrUnknownActivityLevel)
}

func TestTargetCalories_Floor(t *testing.T) {
	// For any tdee < 1700 losing clamps at 1200.
	for _, tdee := range []int{500, 1200, 1500, 1699} {
		assert.Equal(t, MinTargetCalories, TargetCalories(tdee, GoalLose), "tdee %d", tdee)
	}

	assert.Equal(t, 1200, TargetCalories(1700, GoalLose))
	assert.Equal(t, 1500, TargetCalories(2000, GoalLose))
	assert.Equal(t, 2300, TargetCalories(2000, GoalGain))
	assert.Equal(t, 2000, TargetCalories(2000, GoalMaintain))
}

func TestGoalForBodyFat_Boundaries(t *testing.T) {
	cases := []struct {
		gender  Gender
		percent float64
		want    Goal
	}{
		{GenderMale, 10, GoalLose},
		{GenderMale, 11, GoalMaintain},
		{GenderMale, 19, GoalMaintain},
		{GenderMale, 20, GoalGain},
		{GenderFemale, 18, GoalLose},
		{GenderFemale, 19, GoalMaintain},
		{GenderFemale, 27, GoalMaintain},
		{GenderFemale, 28, GoalGain},
	}

	for _, tc := range cases {
		got := GoalForBodyFat(tc.percent, tc.gender)
		assert.Equal(t, tc.want, got, "%s %.0f%%", tc.gender, tc.percent)
	}
}

func TestRecommend(t *testing.T) {
	rec, err := Recommend(RecommendationInput{
		WeightKg:             70,
		HeightCm:             175,
		AgeYears:             25,
		Gender:               GenderMale,
		TargetBodyFatPercent: 10,
		// ActivityLevel omitted: defaults to moderate.
	})
	require.NoError(t, err)

	assert.Equal(t, 1674, rec.BMR) // 1673.75 rounded
	assert.Equal(t, 2594, rec.TDEE)
	assert.Equal(t, GoalLose, rec.Goal)
	assert.Equal(t, 2094, rec.TargetCalories) // 2594 - 500
	assert.Contains(t, rec.Message, "deficit")
}

func TestRecommend_UnknownActivity(t *testing.T) {
	_, err := Recommend(RecommendationInput{
		WeightKg:      70,
		HeightCm:      175,
		AgeYears:      25,
		Gender:        GenderMale,
		ActivityLevel: "extreme",
	})
	assert.ErrorIs(t, err, ErrUnknownActivityLevel)
}
