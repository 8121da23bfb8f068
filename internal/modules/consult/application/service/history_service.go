package service

import (
	"errors"
	"time"

	consultRespond "SaDam/internal/modules/consult/application/dto/respond"
	consultRepository "SaDam/internal/modules/consult/domain/repository"
	"SaDam/pkg/xerr"
	"SaDam/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HistoryService 只读路径，与进行中的状态机互不干扰
type HistoryService interface {
	GetSessionList(userID string, limit int) ([]consultRespond.SessionItem, error)
	GetSessionDetail(sessionID string) (*consultRespond.SessionDetail, error)
}

type historyServiceImpl struct {
	characterRepo consultRepository.CharacterRepository
	sessionRepo   consultRepository.SessionRepository
	messageRepo   consultRepository.MessageRepository
	fortuneRepo   consultRepository.FortuneResultRepository
}

func NewHistoryService(
	characterRepo consultRepository.CharacterRepository,
	sessionRepo consultRepository.SessionRepository,
	messageRepo consultRepository.MessageRepository,
	fortuneRepo consultRepository.FortuneResultRepository,
) HistoryService {
	return &historyServiceImpl{
		characterRepo: characterRepo,
		sessionRepo:   sessionRepo,
		messageRepo:   messageRepo,
		fortuneRepo:   fortuneRepo,
	}
}

func (s *historyServiceImpl) GetSessionList(userID string, limit int) ([]consultRespond.SessionItem, error) {
	userID = normalizeUserID(userID)
	if limit <= 0 {
		limit = 10
	}

	sessions, err := s.sessionRepo.ListByUserID(userID, limit)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	out := make([]consultRespond.SessionItem, 0, len(sessions))
	for i := range sessions {
		sess := sessions[i]
		item := consultRespond.SessionItem{
			SessionId: sess.Id,
			Status:    sess.Status,
			StartedAt: sess.StartedAt.Format(time.RFC3339),
		}
		if sess.EndedAt.Valid {
			item.EndedAt = sess.EndedAt.Time.Format(time.RFC3339)
		}
		// 附带客人摘要，取不到时列表项照常返回
		if ch, err := s.characterRepo.GetByID(sess.CharacterId); err != nil {
			zlog.Warn("character lookup failed for session list",
				zap.Error(err), zap.String("session_id", sess.Id))
		} else {
			item.CharacterName = ch.Name
			item.CharacterAge = ch.Age
			item.CharacterOccupation = ch.Occupation
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *historyServiceImpl) GetSessionDetail(sessionID string) (*consultRespond.SessionDetail, error) {
	if sessionID == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	sess, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "상담 기록을 찾을 수 없습니다.")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	detail := &consultRespond.SessionDetail{
		SessionId: sess.Id,
		Status:    sess.Status,
		StartedAt: sess.StartedAt.Format(time.RFC3339),
	}
	if sess.EndedAt.Valid {
		detail.EndedAt = sess.EndedAt.Time.Format(time.RFC3339)
	}

	if ch, err := s.characterRepo.GetByID(sess.CharacterId); err != nil {
		zlog.Warn("character lookup failed for session detail",
			zap.Error(err), zap.String("session_id", sess.Id))
	} else {
		detail.Character = toCharacterCard(ch)
	}

	msgs, err := s.messageRepo.ListBySessionID(sessionID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	detail.Messages = make([]consultRespond.MessageItem, 0, len(msgs))
	for i := range msgs {
		detail.Messages = append(detail.Messages, toMessageItem(&msgs[i]))
	}

	result, err := s.fortuneRepo.GetBySessionID(sessionID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if result != nil {
		detail.Reading = toFortuneReading(result)
	}

	return detail, nil
}
