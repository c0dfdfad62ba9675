package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifit_backend/internal/services/dto"
	"unifit_backend/pkg/apperrors"
)

type fakeStorage struct {
	saved map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (s *fakeStorage) Save(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.saved[key] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.saved[key])), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

func (s *fakeStorage) GetURL(_ context.Context, key string) (string, error) {
	return "http://cdn.test/" + key, nil
}

func newUserFixture(t *testing.T) (*authFixture, UserService, *fakeStorage) {
	t.Helper()
	f := newAuthFixture(t)
	store := newFakeStorage()
	svc := NewUserService(f.users, store, 5*1024*1024)
	return f, svc, store
}

func TestUpdateProfilePartial(t *testing.T) {
	f, svc, _ := newUserFixture(t)
	user := f.signUp(t, "student@uni.edu", "password123")

	name := "New Name"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	// Untouched fields keep their values, email included.
	assert.Equal(t, "student@uni.edu", updated.Email)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	_, svc, _ := newUserFixture(t)

	name := "New Name"
	_, err := svc.UpdateProfile(context.Background(), "missing", &dto.UpdateProfileRequest{Name: &name})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUploadProfilePicture(t *testing.T) {
	f, svc, store := newUserFixture(t)
	user := f.signUp(t, "student@uni.edu", "password123")
	ctx := context.Background()

	url, err := svc.UploadProfilePicture(ctx, user.ID, &PictureUpload{
		Filename:    "me.png",
		ContentType: "image/png",
		Size:        1024,
		Reader:      strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.test/avatars/"+user.ID+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Len(t, store.saved, 1)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, profile.ProfilePicture)
}

func TestUploadProfilePictureRejections(t *testing.T) {
	f, svc, store := newUserFixture(t)
	user := f.signUp(t, "student@uni.edu", "password123")
	ctx := context.Background()

	_, err := svc.UploadProfilePicture(ctx, user.ID, &PictureUpload{
		Filename:    "notes.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Reader:      strings.NewReader("pdf"),
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	_, err = svc.UploadProfilePicture(ctx, user.ID, &PictureUpload{
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
		Size:        6 * 1024 * 1024,
		Reader:      strings.NewReader("jpg"),
	})
	require.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	assert.Empty(t, store.saved)
}
