package entity

import (
	"time"
)

// FortuneResult 每个会话至多一条，生成后不可变
type FortuneResult struct {
	Id                  string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId           string    `gorm:"column:session_id;type:uuid;not null;uniqueIndex:uniq_fortune_session"`
	CharacterId         string    `gorm:"column:character_id;type:uuid;not null"`
	FortuneAnalysis     string    `gorm:"column:fortune_analysis;type:text"`
	PersonalityAnalysis string    `gorm:"column:personality_analysis;type:text"`
	Advice              string    `gorm:"column:advice;type:text"`
	Summary             string    `gorm:"column:summary;type:text"`
	CreatedAt           time.Time `gorm:"column:created_at;not null"`
}

func (FortuneResult) TableName() string { return "fortune_results" }
