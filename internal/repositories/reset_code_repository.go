package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"unifit_backend/internal/models"
)

var ErrResetCodeNotFound = errors.New("reset code not found")

type ResetCodeRepository interface {
	// Upsert stores the code for the email, replacing any prior code.
	Upsert(code *models.PasswordResetCode) error

	// FindActive returns the unconsumed, unexpired code for the email.
	FindActive(email string, now time.Time) (*models.PasswordResetCode, error)

	// MarkConsumed invalidates the code after a completed reset.
	MarkConsumed(email string) error

	// DeleteExpired removes codes past their TTL (maintenance).
	DeleteExpired(now time.Time) error
}

type ResetCodeRepositoryImpl struct {
	db *gorm.DB
}

func NewResetCodeRepository(db *gorm.DB) ResetCodeRepository {
	return &ResetCodeRepositoryImpl{db: db}
}

func (r *ResetCodeRepositoryImpl) Upsert(code *models.PasswordResetCode) error {
	code.Email = NormalizeEmail(code.Email)
	if code.ID == "" {
		code.ID = uuid.NewString()
	}

	// One row per email: a new request overwrites the previous code,
	// so only the last-issued code is ever valid.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "consumed", "updated_at"}),
	}).Create(code).Error
}

func (r *ResetCodeRepositoryImpl) FindActive(email string, now time.Time) (*models.PasswordResetCode, error) {
	var code models.PasswordResetCode
	err := r.db.
		Where("email = ? AND consumed = ? AND expires_at > ?", NormalizeEmail(email), false, now).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *ResetCodeRepositoryImpl) MarkConsumed(email string) error {
	result := r.db.Model(&models.PasswordResetCode{}).
		Where("email = ?", NormalizeEmail(email)).
		Updates(map[string]interface{}{
			"consumed":   true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetCodeNotFound
	}
	return nil
}

func (r *ResetCodeRepositoryImpl) DeleteExpired(now time.Time) error {
	return r.db.Where("expires_at < ?", now).Delete(&models.PasswordResetCode{}).Error
}
