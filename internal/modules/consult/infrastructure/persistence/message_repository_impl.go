package persistence

import (
	consultEntity "SaDam/internal/modules/consult/domain/entity"
	consultRepository "SaDam/internal/modules/consult/domain/repository"

	"gorm.io/gorm"
)

type messageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) consultRepository.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) Create(message *consultEntity.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepositoryImpl) ListBySessionID(sessionID string) ([]consultEntity.Message, error) {
	var msgs []consultEntity.Message
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
