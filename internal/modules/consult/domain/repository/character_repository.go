package repository

import (
	"SaDam/internal/modules/consult/domain/entity"
)

type CharacterRepository interface {
	// Create 插入后回填存储端生成的主键
	Create(character *entity.Character) error
	GetByID(id string) (*entity.Character, error)
	UpdateImageURL(id string, imageURL string) error
}
