package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifit_backend/internal/auth"
	"unifit_backend/internal/email"
	"unifit_backend/internal/models"
	"unifit_backend/internal/repositories"
	"unifit_backend/internal/services/dto"
	"unifit_backend/internal/session"
	"unifit_backend/pkg/apperrors"
)

// --- in-memory fakes ---

type fakeUserRepo struct {
	byID  map[string]*models.User
	codes *fakeCodeRepo
}

func newFakeUserRepo(codes *fakeCodeRepo) *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*models.User{}, codes: codes}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	normalized := repositories.NormalizeEmail(emailAddr)
	for _, u := range r.byID {
		if u.Email == normalized {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.Email = repositories.NormalizeEmail(user.Email)
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(userID, hash string) error {
	stored, ok := r.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	stored, ok := r.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if v, ok := fields["profile_picture"]; ok {
		stored.ProfilePicture = v.(string)
	}
	if v, ok := fields["name"]; ok {
		stored.Name = v.(string)
	}
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	user, ok := r.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	// Mirrors the transactional delete: the reset code goes with the
	// account.
	delete(r.codes.byEmail, user.Email)
	delete(r.byID, userID)
	return nil
}

type fakeCodeRepo struct {
	byEmail map[string]*models.PasswordResetCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{byEmail: map[string]*models.PasswordResetCode{}}
}

func (r *fakeCodeRepo) Upsert(code *models.PasswordResetCode) error {
	code.Email = repositories.NormalizeEmail(code.Email)
	copied := *code
	r.byEmail[code.Email] = &copied
	return nil
}

func (r *fakeCodeRepo) FindActive(emailAddr string, now time.Time) (*models.PasswordResetCode, error) {
	code, ok := r.byEmail[repositories.NormalizeEmail(emailAddr)]
	if !ok || code.Consumed || !now.Before(code.ExpiresAt) {
		return nil, repositories.ErrResetCodeNotFound
	}
	copied := *code
	return &copied, nil
}

func (r *fakeCodeRepo) MarkConsumed(emailAddr string) error {
	code, ok := r.byEmail[repositories.NormalizeEmail(emailAddr)]
	if !ok {
		return repositories.ErrResetCodeNotFound
	}
	code.Consumed = true
	return nil
}

func (r *fakeCodeRepo) DeleteExpired(now time.Time) error {
	for key, code := range r.byEmail {
		if code.ExpiresAt.Before(now) {
			delete(r.byEmail, key)
		}
	}
	return nil
}

type fakeMailer struct {
	sentTo   []string
	lastCode string
	fail     bool
}

func (m *fakeMailer) Send(_ *email.Email) (string, error) { return "msg-id", nil }

func (m *fakeMailer) SendTemplate(_ []string, _, _ string, _ email.TemplateData) (string, error) {
	return "msg-id", nil
}

func (m *fakeMailer) SendPasswordResetCode(to, code string) (string, error) {
	if m.fail {
		return "", assert.AnError
	}
	m.sentTo = append(m.sentTo, to)
	m.lastCode = code
	return "msg-id", nil
}

func (m *fakeMailer) Validate() error { return nil }

// --- fixture ---

type authFixture struct {
	users    *fakeUserRepo
	codes    *fakeCodeRepo
	mailer   *fakeMailer
	sessions *session.Manager
	svc      *AuthServiceImpl
	now      time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	codes := newFakeCodeRepo()
	f := &authFixture{
		users:    newFakeUserRepo(codes),
		codes:    codes,
		mailer:   &fakeMailer{},
		sessions: session.NewManager(session.NewMemoryStore()),
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	f.svc = NewAuthService(f.users, f.codes, f.mailer, f.sessions, tokens).(*AuthServiceImpl)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *authFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *authFixture) signUp(t *testing.T, emailAddr, password string) *models.PublicUser {
	t.Helper()
	user, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    emailAddr,
		Password: password,
		Name:     "Test Student",
	})
	require.NoError(t, err)
	return user
}

// --- tests ---

func TestSignUpAndSignIn(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := f.signUp(t, "student@uni.edu", "password123")
	assert.Equal(t, "student@uni.edu", user.Email)

	resp, err := f.svc.SignIn(ctx, &dto.SignInRequest{
		Email:    "student@uni.edu",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)

	current := f.svc.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.UserID)
}

func TestSignUpDuplicateEmailDifferentCase(t *testing.T) {
	f := newAuthFixture(t)

	f.signUp(t, "student@uni.edu", "password123")

	_, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "STUDENT@Uni.Edu",
		Password: "otherpassword",
	})
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "student@uni.edu",
		Password: "short7!",
	})
	require.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "not-an-email",
		Password: "password123",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidEmail)
}

func TestSignInErrors(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")

	// Unknown email is reported distinctly from a wrong password.
	_, err := f.svc.SignIn(ctx, &dto.SignInRequest{Email: "nobody@uni.edu", Password: "password123"})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "wrongpassword"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSignOutClearsSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")
	_, err := f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, f.svc.CurrentUser(ctx))

	require.NoError(t, f.svc.SignOut(ctx))
	assert.Nil(t, f.svc.CurrentUser(ctx))

	// Signing out twice is fine.
	require.NoError(t, f.svc.SignOut(ctx))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	require.Len(t, f.mailer.sentTo, 1)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), f.mailer.lastCode)

	code := f.mailer.lastCode

	// Verification does not consume the code; it can be checked again.
	require.NoError(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", code))
	require.NoError(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", code))

	require.ErrorIs(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", "000000"), apperrors.ErrResetCodeMismatch)

	require.NoError(t, f.svc.ResetPassword(ctx, "student@uni.edu", code, "newpassword456"))

	// The code is consumed once the reset completes.
	require.ErrorIs(t, f.svc.ResetPassword(ctx, "student@uni.edu", code, "anotherpassword"), apperrors.ErrResetCodeExpired)

	_, err := f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "password123"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "newpassword456"})
	require.NoError(t, err)
}

func TestResetCodeExpires(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	code := f.mailer.lastCode

	f.advance(ResetCodeTTL + time.Second)

	require.ErrorIs(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", code), apperrors.ErrResetCodeExpired)
	require.ErrorIs(t, f.svc.ResetPassword(ctx, "student@uni.edu", code, "newpassword456"), apperrors.ErrResetCodeExpired)
}

func TestReRequestInvalidatesPreviousCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	first := f.mailer.lastCode

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	second := f.mailer.lastCode

	if first != second {
		require.ErrorIs(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", first), apperrors.ErrResetCodeMismatch)
	}
	require.NoError(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", second))
}

func TestRequestResetForUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RequestPasswordReset(context.Background(), "nobody@uni.edu")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, f.mailer.sentTo)
}

func TestRequestResetDeliveryFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.fail = true

	f.signUp(t, "student@uni.edu", "password123")

	err := f.svc.RequestPasswordReset(context.Background(), "student@uni.edu")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDeliveryError, appErr.Code)
}

func TestResetPasswordRejectsWeakPasswordWithoutConsuming(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	code := f.mailer.lastCode

	require.ErrorIs(t, f.svc.ResetPassword(ctx, "student@uni.edu", code, "short"), apperrors.ErrWeakPassword)

	// The failed attempt must not burn the code.
	require.NoError(t, f.svc.ResetPassword(ctx, "student@uni.edu", code, "newpassword456"))
}

func TestPasswordResetKeepsSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")
	_, err := f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "password123", RememberMe: true})
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	require.NoError(t, f.svc.ResetPassword(ctx, "student@uni.edu", f.mailer.lastCode, "newpassword456"))

	// Changing the password does not sign the user out.
	assert.NotNil(t, f.svc.CurrentUser(ctx))
}

func TestDeleteAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.signUp(t, "student@uni.edu", "password123")
	_, err := f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "password123"})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteAccount(ctx, "student@uni.edu", "wrongpassword"), apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, f.svc.DeleteAccount(ctx, "nobody@uni.edu", "password123"), apperrors.ErrUserNotFound)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "student@uni.edu"))
	require.NoError(t, f.svc.DeleteAccount(ctx, "student@uni.edu", "password123"))

	// Account, session and pending reset code are all gone.
	assert.Nil(t, f.svc.CurrentUser(ctx))
	_, err = f.svc.SignIn(ctx, &dto.SignInRequest{Email: "student@uni.edu", Password: "password123"})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	require.ErrorIs(t, f.svc.VerifyResetCode(ctx, "student@uni.edu", f.mailer.lastCode), apperrors.ErrResetCodeExpired)

	// The address is free for a fresh sign-up.
	f.signUp(t, "student@uni.edu", "password123")
}
