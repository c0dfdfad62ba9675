package models

// User is the account record. Email is stored lower-cased and is
// immutable after creation; the unique index is what ultimately
// guarantees one account per address under concurrent sign-ups.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile attributes, all optional and mutable.
	Name           string  `json:"name"`
	University     string  `json:"university"`
	Gender         string  `gorm:"type:varchar(20)" json:"gender"`
	Height         float64 `json:"height"` // cm
	Weight         float64 `json:"weight"` // kg
	FitnessGoal    string  `json:"fitness_goal"`
	SNSLink        string  `json:"sns_link"`
	ProfilePicture string  `json:"profile_picture"`
}

// PublicUser is the representation safe to return to clients.
type PublicUser struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	University     string  `json:"university"`
	Gender         string  `json:"gender"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	FitnessGoal    string  `json:"fitness_goal"`
	SNSLink        string  `json:"sns_link"`
	ProfilePicture string  `json:"profile_picture"`
}

// Public strips the password hash and internal fields.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		University:     u.University,
		Gender:         u.Gender,
		Height:         u.Height,
		Weight:         u.Weight,
		FitnessGoal:    u.FitnessGoal,
		SNSLink:        u.SNSLink,
		ProfilePicture: u.ProfilePicture,
	}
}
