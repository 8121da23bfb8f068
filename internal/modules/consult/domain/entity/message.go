package entity

import (
	"time"
)

const (
	SpeakerUser = "user"
	SpeakerAI   = "ai"
)

// Message 只增不改，按 timestamp 升序构成会话记录
type Message struct {
	Id          string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string    `gorm:"column:session_id;type:uuid;not null;index:idx_conversations_session"`
	CharacterId string    `gorm:"column:character_id;type:uuid;not null"`
	Speaker     string    `gorm:"column:speaker;type:varchar(8);not null"`
	Content     string    `gorm:"column:message;type:text;not null"`
	Timestamp   time.Time `gorm:"column:timestamp;not null;index:idx_conversations_timestamp"`
}

func (Message) TableName() string { return "conversations" }
