package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	consultRespond "SaDam/internal/modules/consult/application/dto/respond"
	consultEntity "SaDam/internal/modules/consult/domain/entity"
	"SaDam/internal/modules/consult/domain/gateway"
	consultRepository "SaDam/internal/modules/consult/domain/repository"
	"SaDam/pkg/util"
	"SaDam/pkg/xerr"
	"SaDam/pkg/zlog"

	"go.uber.org/zap"
)

const defaultUserID = "anonymous"

type ConsultationService interface {
	GetState(userID string) (*consultRespond.ConsultState, error)
	Begin(ctx context.Context, userID string) (*consultRespond.ConsultState, error)
	SendMessage(ctx context.Context, userID string, content string) (*consultRespond.ConsultState, error)
	End(ctx context.Context, userID string) (*consultRespond.ConsultState, error)
	Reset(userID string) (*consultRespond.ConsultState, error)
}

// consultState 单个用户的显式视图状态，取代散落的全局变量
type consultState struct {
	phase     string
	character *consultEntity.Character
	sessionID string
	messages  []consultEntity.Message
	reading   *consultEntity.FortuneResult
}

type consultationServiceImpl struct {
	characterRepo consultRepository.CharacterRepository
	sessionRepo   consultRepository.SessionRepository
	messageRepo   consultRepository.MessageRepository
	fortuneRepo   consultRepository.FortuneResultRepository
	generator     gateway.FortuneGenerator
	portraitGen   gateway.PortraitGenerator
	bucket        gateway.StorageBucket

	mu     sync.Mutex
	states map[string]*consultState
}

func NewConsultationService(
	characterRepo consultRepository.CharacterRepository,
	sessionRepo consultRepository.SessionRepository,
	messageRepo consultRepository.MessageRepository,
	fortuneRepo consultRepository.FortuneResultRepository,
	generator gateway.FortuneGenerator,
	portraitGen gateway.PortraitGenerator,
	bucket gateway.StorageBucket,
) ConsultationService {
	return &consultationServiceImpl{
		characterRepo: characterRepo,
		sessionRepo:   sessionRepo,
		messageRepo:   messageRepo,
		fortuneRepo:   fortuneRepo,
		generator:     generator,
		portraitGen:   portraitGen,
		bucket:        bucket,
		states:        make(map[string]*consultState),
	}
}

func normalizeUserID(userID string) string {
	if userID == "" {
		return defaultUserID
	}
	return userID
}

func (s *consultationServiceImpl) stateOf(userID string) *consultState {
	st, ok := s.states[userID]
	if !ok {
		st = &consultState{phase: consultRespond.PhaseNoCharacter}
		s.states[userID] = st
	}
	return st
}

func (s *consultationServiceImpl) GetState(userID string) (*consultRespond.ConsultState, error) {
	userID = normalizeUserID(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return toConsultState(s.stateOf(userID)), nil
}

// Begin NoCharacter -> Active：生成客人档案、落库、尽力生成头像、开会话、落问候语
func (s *consultationServiceImpl) Begin(ctx context.Context, userID string) (*consultRespond.ConsultState, error) {
	userID = normalizeUserID(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateOf(userID)
	if st.phase == consultRespond.PhaseActive {
		return nil, xerr.New(xerr.BadRequest, "이미 상담이 진행 중입니다.")
	}
	if st.phase == consultRespond.PhaseEnded {
		return nil, xerr.New(xerr.BadRequest, "새로운 상담을 시작하려면 먼저 초기화해주세요.")
	}

	character, err := s.generator.GeneratePersona(ctx)
	if err != nil {
		// 解析失败和传输失败统一呈现，状态不动
		return nil, xerr.ErrGenerationFailed
	}

	character.CreatedAt = time.Now()
	if err := s.characterRepo.Create(character); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	// 头像为可选步骤，失败不阻断开场
	runOptionalStep("portrait", s.portraitGen != nil && s.bucket != nil, func() error {
		tmpURL, err := s.portraitGen.Generate(ctx, character)
		if err != nil {
			return err
		}
		raw, err := s.portraitGen.Download(ctx, tmpURL)
		if err != nil {
			return err
		}
		path := fmt.Sprintf("portraits/%s.png", util.GenerateShortUUID())
		publicURL, err := s.bucket.Upload(ctx, path, raw, "image/png")
		if err != nil {
			return err
		}
		if err := s.characterRepo.UpdateImageURL(character.Id, publicURL); err != nil {
			return err
		}
		character.ImageUrl.String = publicURL
		character.ImageUrl.Valid = true
		return nil
	})

	session := &consultEntity.Session{
		CharacterId: character.Id,
		UserId:      userID,
		Status:      consultEntity.SessionStatusActive,
		StartedAt:   time.Now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		// 角色已落库而会话失败：留下孤儿角色，只报错不自动重试
		zlog.Error("session create failed after character persisted",
			zap.Error(err), zap.String("character_id", character.Id))
		return nil, xerr.ErrServerError
	}

	greeting := consultEntity.Message{
		SessionId:   session.Id,
		CharacterId: character.Id,
		Speaker:     consultEntity.SpeakerAI,
		Content:     greetingOf(character),
		Timestamp:   time.Now(),
	}
	runOptionalStep("greeting_persist", true, func() error {
		return s.messageRepo.Create(&greeting)
	})

	st.phase = consultRespond.PhaseActive
	st.character = character
	st.sessionID = session.Id
	st.messages = []consultEntity.Message{greeting}
	st.reading = nil

	zlog.Info("consultation started",
		zap.String("user_id", userID),
		zap.String("session_id", session.Id),
		zap.String("character_name", character.Name))

	return toConsultState(st), nil
}

// SendMessage Active 自环：用户消息先落库，回复失败时记录留空档，可重试
func (s *consultationServiceImpl) SendMessage(ctx context.Context, userID string, content string) (*consultRespond.ConsultState, error) {
	userID = normalizeUserID(userID)
	if content == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateOf(userID)
	if st.phase != consultRespond.PhaseActive {
		return nil, xerr.New(xerr.BadRequest, "진행 중인 상담이 없습니다.")
	}

	userMsg := consultEntity.Message{
		SessionId:   st.sessionID,
		CharacterId: st.character.Id,
		Speaker:     consultEntity.SpeakerUser,
		Content:     content,
		Timestamp:   time.Now(),
	}
	if err := s.messageRepo.Create(&userMsg); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	st.messages = append(st.messages, userMsg)

	reply, err := s.generator.GenerateReply(ctx, st.character, st.messages[:len(st.messages)-1], content)
	if err != nil {
		// 用户消息已保留，助手侧留空档，调用方可重试
		return nil, xerr.ErrReplyFailed
	}

	aiMsg := consultEntity.Message{
		SessionId:   st.sessionID,
		CharacterId: st.character.Id,
		Speaker:     consultEntity.SpeakerAI,
		Content:     reply,
		Timestamp:   time.Now(),
	}
	if err := s.messageRepo.Create(&aiMsg); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	st.messages = append(st.messages, aiMsg)

	return toConsultState(st), nil
}

// End Active -> Ended：记录不足则拒绝；完成标记和结果落库都是尽力而为
func (s *consultationServiceImpl) End(ctx context.Context, userID string) (*consultRespond.ConsultState, error) {
	userID = normalizeUserID(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateOf(userID)
	if st.phase != consultRespond.PhaseActive {
		return nil, xerr.New(xerr.BadRequest, "진행 중인 상담이 없습니다.")
	}
	if len(st.messages) < 2 {
		return nil, xerr.New(xerr.Forbidden, "조금 더 대화를 나눈 후에 상담을 마무리할 수 있습니다.")
	}

	// 完成标记失败也继续走解读流程
	runOptionalStep("mark_completed", true, func() error {
		return s.sessionRepo.MarkCompleted(st.sessionID, time.Now())
	})

	transcript, err := s.messageRepo.ListBySessionID(st.sessionID)
	if err != nil || len(transcript) == 0 {
		if err != nil {
			zlog.Warn("failed to fetch persisted transcript, falling back to view state", zap.Error(err))
		}
		transcript = st.messages
	}

	reading, err := s.generator.GenerateReading(ctx, st.character, transcript)
	if err != nil {
		// 解读失败的会话永久停留在 Ended，没有结果
		zlog.Warn("reading generation failed, session ends without a result",
			zap.String("session_id", st.sessionID))
	} else {
		reading.SessionId = st.sessionID
		reading.CharacterId = st.character.Id
		reading.CreatedAt = time.Now()
		runOptionalStep("fortune_result_persist", true, func() error {
			return s.fortuneRepo.Create(reading)
		})
		st.reading = reading
	}

	st.phase = consultRespond.PhaseEnded

	zlog.Info("consultation ended",
		zap.String("user_id", userID),
		zap.String("session_id", st.sessionID),
		zap.Bool("has_reading", st.reading != nil))

	return toConsultState(st), nil
}

// Reset 只重置视图，不动任何已持久化数据
func (s *consultationServiceImpl) Reset(userID string) (*consultRespond.ConsultState, error) {
	userID = normalizeUserID(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return toConsultState(s.stateOf(userID)), nil
}

func greetingOf(ch *consultEntity.Character) string {
	return fmt.Sprintf("안녕하세요, 처음 뵙겠습니다. %s라고 합니다. 요즘 고민이 있어서 사주를 보러 왔어요...", ch.Name)
}

func toConsultState(st *consultState) *consultRespond.ConsultState {
	out := &consultRespond.ConsultState{
		Phase:     st.phase,
		SessionId: st.sessionID,
		Messages:  make([]consultRespond.MessageItem, 0, len(st.messages)),
	}
	if st.character != nil {
		out.Character = toCharacterCard(st.character)
	}
	for i := range st.messages {
		out.Messages = append(out.Messages, toMessageItem(&st.messages[i]))
	}
	if st.reading != nil {
		out.Reading = toFortuneReading(st.reading)
	}
	return out
}

func toCharacterCard(ch *consultEntity.Character) *consultRespond.CharacterCard {
	card := &consultRespond.CharacterCard{
		CharacterId:   ch.Id,
		Name:          ch.Name,
		Age:           ch.Age,
		Gender:        ch.Gender,
		Occupation:    ch.Occupation,
		Personality:   ch.Personality,
		Concern:       ch.BackgroundStory,
		BirthDate:     ch.BirthDate,
		BirthTime:     ch.BirthTime,
		SpeakingStyle: ch.SpeakingStyle,
	}
	if ch.ImageUrl.Valid {
		card.ImageUrl = ch.ImageUrl.String
	}
	return card
}

func toMessageItem(m *consultEntity.Message) consultRespond.MessageItem {
	return consultRespond.MessageItem{
		Speaker:   m.Speaker,
		Content:   m.Content,
		Timestamp: m.Timestamp.Format(time.RFC3339),
	}
}

func toFortuneReading(r *consultEntity.FortuneResult) *consultRespond.FortuneReading {
	return &consultRespond.FortuneReading{
		FortuneAnalysis:     r.FortuneAnalysis,
		PersonalityAnalysis: r.PersonalityAnalysis,
		Advice:              r.Advice,
		Summary:             r.Summary,
	}
}
