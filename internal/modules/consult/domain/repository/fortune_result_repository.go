package repository

import (
	"SaDam/internal/modules/consult/domain/entity"
)

type FortuneResultRepository interface {
	Create(result *entity.FortuneResult) error
	// GetBySessionID 不存在时返回 (nil, nil)
	GetBySessionID(sessionID string) (*entity.FortuneResult, error)
}
