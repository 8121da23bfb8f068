package repository

import (
	"SaDam/internal/modules/consult/domain/entity"
)

type MessageRepository interface {
	Create(message *entity.Message) error
	// ListBySessionID 按 timestamp 升序返回完整会话记录
	ListBySessionID(sessionID string) ([]entity.Message, error)
}
