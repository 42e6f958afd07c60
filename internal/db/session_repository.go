package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wateringdiary/webapp/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

// Times are stored in UTC so that SQLite's text comparison of timestamps
// stays chronological.
func (repo *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	session.CreatedAt = session.CreatedAt.UTC()
	session.ExpiresAt = session.ExpiresAt.UTC()
	return repo.database.WithContext(ctx).Create(session).Error
}

// FindActive returns the session only if it is neither revoked nor expired
// at now.
func (repo *SessionRepository) FindActive(ctx context.Context, id string, now time.Time) (models.Session, error) {
	var session models.Session
	err := repo.database.WithContext(ctx).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", id, now.UTC()).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (repo *SessionRepository) Revoke(ctx context.Context, id string, now time.Time) error {
	return repo.database.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now.UTC()).Error
}

func (repo *SessionRepository) RevokeByLogin(ctx context.Context, login string, now time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.Session{}).
		Where("login = ? AND revoked_at IS NULL", login).
		Update("revoked_at", now.UTC())
	return result.RowsAffected, result.Error
}

// PruneExpired deletes rows that can no longer authenticate anyone.
func (repo *SessionRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("expires_at <= ? OR revoked_at IS NOT NULL", now.UTC()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (repo *SessionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := repo.database.WithContext(ctx).
		Model(&models.Session{}).
		Where("revoked_at IS NULL AND expires_at > ?", now.UTC()).
		Count(&count).Error
	return count, err
}
