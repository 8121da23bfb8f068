package persistence

import (
	"errors"

	consultEntity "SaDam/internal/modules/consult/domain/entity"
	consultRepository "SaDam/internal/modules/consult/domain/repository"

	"gorm.io/gorm"
)

type fortuneResultRepositoryImpl struct {
	db *gorm.DB
}

func NewFortuneResultRepository(db *gorm.DB) consultRepository.FortuneResultRepository {
	return &fortuneResultRepositoryImpl{db: db}
}

func (r *fortuneResultRepositoryImpl) Create(result *consultEntity.FortuneResult) error {
	return r.db.Create(result).Error
}

func (r *fortuneResultRepositoryImpl) GetBySessionID(sessionID string) (*consultEntity.FortuneResult, error) {
	var res consultEntity.FortuneResult
	err := r.db.Where("session_id = ?", sessionID).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}
