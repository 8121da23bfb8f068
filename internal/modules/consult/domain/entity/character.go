package entity

import (
	"database/sql"
	"time"
)

// Character 来访客人档案，生成后除头像地址外不再变更
type Character struct {
	Id              string         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string         `gorm:"column:name;type:varchar(64);not null"`
	Age             int            `gorm:"column:age;type:int;not null"`
	Gender          string         `gorm:"column:gender;type:varchar(16);not null"`
	Occupation      string         `gorm:"column:occupation;type:varchar(128);not null"`
	Personality     string         `gorm:"column:personality;type:text"`
	BackgroundStory string         `gorm:"column:background_story;type:text"` // 当前的烦恼
	BirthDate       string         `gorm:"column:birth_date;type:varchar(16)"`
	BirthTime       string         `gorm:"column:birth_time;type:varchar(8)"`
	SpeakingStyle   string         `gorm:"column:speaking_style;type:text"`
	ImageUrl        sql.NullString `gorm:"column:image_url;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null"`
}

func (Character) TableName() string { return "characters" }
