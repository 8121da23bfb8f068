package repository

import (
	"time"

	"SaDam/internal/modules/consult/domain/entity"
)

type SessionRepository interface {
	Create(session *entity.Session) error
	GetByID(id string) (*entity.Session, error)
	// MarkCompleted 状态只进不退，重复调用不会把 completed 改回 active
	MarkCompleted(id string, endedAt time.Time) error
	// ListByUserID 按开始时间倒序
	ListByUserID(userID string, limit int) ([]entity.Session, error)
}
