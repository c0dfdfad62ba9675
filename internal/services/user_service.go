package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"unifit_backend/internal/logger"
	"unifit_backend/internal/models"
	"unifit_backend/internal/repositories"
	"unifit_backend/internal/services/dto"
	"unifit_backend/internal/storage"
	"unifit_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.PublicUser, error)
	UploadProfilePicture(ctx context.Context, userID string, upload *PictureUpload) (string, error)
}

// PictureUpload carries one multipart file from the handler.
type PictureUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UserServiceImpl struct {
	users   repositories.UserRepository
	storage storage.Storage
	maxSize int64
}

func NewUserService(users repositories.UserRepository, store storage.Storage, maxUploadSize int64) UserService {
	return &UserServiceImpl{
		users:   users,
		storage: store,
		maxSize: maxUploadSize,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StorageError(err)
	}
	return user.Public(), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.PublicUser, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.University != nil {
		fields["university"] = *req.University
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.FitnessGoal != nil {
		fields["fitness_goal"] = *req.FitnessGoal
	}
	if req.SNSLink != nil {
		fields["sns_link"] = *req.SNSLink
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(userID, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.StorageError(err)
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserServiceImpl) UploadProfilePicture(ctx context.Context, userID string, upload *PictureUpload) (string, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", apperrors.ErrInvalidFileType
	}
	if upload.Size > s.maxSize {
		return "", apperrors.ErrFileTooLarge
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.StorageError(err)
	}

	ext := filepath.Ext(upload.Filename)
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)

	if err := s.storage.Save(ctx, key, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", apperrors.StorageError(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.StorageError(err)
	}

	if err := s.users.UpdateFields(userID, map[string]interface{}{"profile_picture": url}); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "profile picture uploaded", "user_id", userID, "key", key)
	return url, nil
}
