package persistence

import (
	"time"

	consultEntity "SaDam/internal/modules/consult/domain/entity"
	consultRepository "SaDam/internal/modules/consult/domain/repository"

	"gorm.io/gorm"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) consultRepository.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Create(session *consultEntity.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepositoryImpl) GetByID(id string) (*consultEntity.Session, error) {
	var sess consultEntity.Session
	if err := r.db.Where("id = ?", id).First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *sessionRepositoryImpl) MarkCompleted(id string, endedAt time.Time) error {
	// 只允许 active -> completed，反向更新直接不命中
	return r.db.Model(&consultEntity.Session{}).
		Where("id = ? AND status = ?", id, consultEntity.SessionStatusActive).
		Updates(map[string]interface{}{
			"status":   consultEntity.SessionStatusCompleted,
			"ended_at": endedAt,
		}).Error
}

func (r *sessionRepositoryImpl) ListByUserID(userID string, limit int) ([]consultEntity.Session, error) {
	if limit <= 0 {
		limit = 10
	}
	var sessions []consultEntity.Session
	err := r.db.
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
