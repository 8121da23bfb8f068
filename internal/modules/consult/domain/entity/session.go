package entity

import (
	"database/sql"
	"time"
)

// Session 状态只允许 active -> completed 单向推进
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

type Session struct {
	Id          string       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CharacterId string       `gorm:"column:character_id;type:uuid;not null;index:idx_sessions_character"`
	UserId      string       `gorm:"column:user_id;type:varchar(64);not null;index:idx_sessions_user"`
	Status      string       `gorm:"column:status;type:varchar(16);not null;default:active"`
	StartedAt   time.Time    `gorm:"column:started_at;not null"`
	EndedAt     sql.NullTime `gorm:"column:ended_at"`
}

func (Session) TableName() string { return "sessions" }
