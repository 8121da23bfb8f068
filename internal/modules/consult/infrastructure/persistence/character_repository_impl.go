package persistence

import (
	consultEntity "SaDam/internal/modules/consult/domain/entity"
	consultRepository "SaDam/internal/modules/consult/domain/repository"

	"gorm.io/gorm"
)

type characterRepositoryImpl struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) consultRepository.CharacterRepository {
	return &characterRepositoryImpl{db: db}
}

func (r *characterRepositoryImpl) Create(character *consultEntity.Character) error {
	// postgres 通过 RETURNING 回填 gen_random_uuid() 生成的主键
	return r.db.Create(character).Error
}

func (r *characterRepositoryImpl) GetByID(id string) (*consultEntity.Character, error) {
	var ch consultEntity.Character
	if err := r.db.Where("id = ?", id).First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *characterRepositoryImpl) UpdateImageURL(id string, imageURL string) error {
	return r.db.Model(&consultEntity.Character{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}
