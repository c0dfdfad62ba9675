package services

import (
	"context"
	"errors"
	"time"

	"unifit_backend/internal/auth"
	"unifit_backend/internal/email"
	"unifit_backend/internal/logger"
	"unifit_backend/internal/models"
	"unifit_backend/internal/repositories"
	"unifit_backend/internal/services/dto"
	"unifit_backend/internal/session"
	"unifit_backend/internal/validator"
	"unifit_backend/pkg/apperrors"
)

// ResetCodeTTL is how long a password reset code stays valid.
const ResetCodeTTL = 10 * time.Minute

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*models.PublicUser, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SignInResponse, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) *session.Snapshot

	RequestPasswordReset(ctx context.Context, emailAddr string) error
	VerifyResetCode(ctx context.Context, emailAddr, code string) error
	ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error

	DeleteAccount(ctx context.Context, emailAddr, password string) error
}

type AuthServiceImpl struct {
	users    repositories.UserRepository
	codes    repositories.ResetCodeRepository
	mailer   email.Provider
	sessions *session.Manager
	tokens   *auth.TokenManager

	// now is injectable so expiry behavior is testable.
	now func() time.Time
}

func NewAuthService(
	users repositories.UserRepository,
	codes repositories.ResetCodeRepository,
	mailer email.Provider,
	sessions *session.Manager,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		users:    users,
		codes:    codes,
		mailer:   mailer,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *AuthServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*models.PublicUser, error) {
	if !validator.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		University:   req.University,
		Gender:       req.Gender,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "user signed up", "user_id", user.ID)
	return user.Public(), nil
}

func (s *AuthServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SignInResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Deliberately distinguishable from a wrong password so the
			// client can steer the user to sign-up.
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	snap := &session.Snapshot{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
	}
	if err := s.sessions.Set(ctx, snap, req.RememberMe); err != nil {
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "user signed in", "user_id", user.ID, "remember_me", req.RememberMe)
	return &dto.SignInResponse{
		AccessToken: token,
		User:        user.Public(),
	}, nil
}

func (s *AuthServiceImpl) SignOut(ctx context.Context) error {
	s.sessions.Clear(ctx)
	return nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context) *session.Snapshot {
	return s.sessions.Current(ctx)
}

func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	if !validator.IsValidEmail(emailAddr) {
		return apperrors.ErrInvalidEmail
	}

	if _, err := s.users.FindByEmail(emailAddr); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.StorageError(err)
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return apperrors.InternalError(err)
	}

	// One active code per email: the upsert replaces any earlier code,
	// so re-requesting invalidates the previous one.
	record := &models.PasswordResetCode{
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: s.now().Add(ResetCodeTTL),
		Consumed:  false,
	}
	if err := s.codes.Upsert(record); err != nil {
		return apperrors.StorageError(err)
	}

	messageID, err := s.mailer.SendPasswordResetCode(emailAddr, code)
	if err != nil {
		return apperrors.DeliveryError(err)
	}

	logger.CtxInfo(ctx, "reset code sent", "message_id", messageID)
	return nil
}

func (s *AuthServiceImpl) VerifyResetCode(ctx context.Context, emailAddr, code string) error {
	_, err := s.activeCode(emailAddr, code)
	// Verification never consumes the code; the same code is checked
	// again by ResetPassword, so the two steps can be retried freely.
	return err
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	record, err := s.activeCode(emailAddr, code)
	if err != nil {
		return err
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(record.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.StorageError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.users.UpdatePasswordHash(user.ID, hash); err != nil {
		return apperrors.StorageError(err)
	}

	// Consume only after the password write succeeded, so a failed
	// write leaves the code usable for a retry.
	if err := s.codes.MarkConsumed(record.Email); err != nil {
		logger.CtxWarn(ctx, "failed to consume reset code", "error", err)
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

// activeCode loads the live code for the email and checks it against
// the submitted value. Expiry and absence are reported the same way so
// the response does not reveal whether a code was ever issued.
func (s *AuthServiceImpl) activeCode(emailAddr, code string) (*models.PasswordResetCode, error) {
	record, err := s.codes.FindActive(emailAddr, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrResetCodeNotFound) {
			return nil, apperrors.ErrResetCodeExpired
		}
		return nil, apperrors.StorageError(err)
	}
	if record.Code != code {
		return nil, apperrors.ErrResetCodeMismatch
	}
	return record, nil
}

func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, emailAddr, password string) error {
	user, err := s.users.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.users.Delete(user.ID); err != nil {
		return apperrors.StorageError(err)
	}

	// Deleting the account ends the session.
	s.sessions.Clear(ctx)

	logger.CtxInfo(ctx, "account deleted", "user_id", user.ID)
	return nil
}
