package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"SaDam/internal/modules/consult/domain/entity"
	"SaDam/internal/modules/consult/domain/gateway"
	"SaDam/pkg/zlog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

const personaSystemPrompt = "You are a creative character designer for fortune-telling consultations."

const personaUserPrompt = `당신은 사주 상담소를 방문한 가상의 인물을 생성하는 전문가입니다.
다음 요소를 포함한 인물을 생성해주세요:
- 이름 (한국 이름)
- 나이 (20-60세)
- 성별
- 직업
- 성격 (한 문장으로)
- 현재 고민이나 상황 (구체적으로)
- 생년월일시 (음력 가능, 형식: YYYY-MM-DD HH:MM)
- 말투 특징

자연스럽고 공감 가능한 인물을 만들어주세요.
아래 키를 가진 JSON 객체로만 응답해주세요:
{"name": "...", "age": 35, "gender": "...", "occupation": "...", "personality": "...", "concern": "...", "birth_date": "YYYY-MM-DD", "birth_time": "HH:MM", "speaking_style": "..."}`

const readingUserPrompt = `당신은 경험 많은 사주 상담가입니다. 아래 손님 정보와 상담 대화 내용을 바탕으로 사주 풀이를 작성해주세요.

[손님 정보]
%s

[상담 대화]
%s

아래 키를 가진 JSON 객체로만 응답해주세요:
{"fortune_analysis": "전체적인 사주 분석", "personality_analysis": "성격 분석", "advice": "조언", "summary": "한 줄 요약"}`

type fortuneGeneratorImpl struct {
	chatModel model.BaseChatModel
	meta      ChatModelMeta
}

func NewFortuneGenerator(chatModel model.BaseChatModel, meta ChatModelMeta) gateway.FortuneGenerator {
	return &fortuneGeneratorImpl{chatModel: chatModel, meta: meta}
}

// personaPayload 生成端约定的 JSON 结构
type personaPayload struct {
	Name          string      `json:"name"`
	Age           json.Number `json:"age"`
	Gender        string      `json:"gender"`
	Occupation    string      `json:"occupation"`
	Personality   string      `json:"personality"`
	Concern       string      `json:"concern"`
	BirthDate     string      `json:"birth_date"`
	BirthTime     string      `json:"birth_time"`
	SpeakingStyle string      `json:"speaking_style"`
}

func (g *fortuneGeneratorImpl) GeneratePersona(ctx context.Context) (*entity.Character, error) {
	msgs := []*schema.Message{
		{Role: schema.System, Content: personaSystemPrompt},
		{Role: schema.User, Content: personaUserPrompt},
	}

	resp, err := g.chatModel.Generate(ctx, msgs,
		model.WithTemperature(0.8),
		model.WithMaxTokens(500),
	)
	if err != nil {
		zlog.Error("persona generation call failed", zap.Error(err))
		return nil, fmt.Errorf("persona generation failed")
	}

	var payload personaPayload
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &payload); err != nil {
		zlog.Error("persona generation returned unparseable content",
			zap.Error(err), zap.Int("content_len", len(resp.Content)))
		return nil, fmt.Errorf("persona generation failed")
	}
	if payload.Name == "" {
		zlog.Error("persona generation returned empty name")
		return nil, fmt.Errorf("persona generation failed")
	}

	age, err := payload.Age.Int64()
	if err != nil {
		zlog.Error("persona generation returned non-numeric age", zap.String("age", payload.Age.String()))
		return nil, fmt.Errorf("persona generation failed")
	}

	return &entity.Character{
		Name:            payload.Name,
		Age:             int(age),
		Gender:          payload.Gender,
		Occupation:      payload.Occupation,
		Personality:     payload.Personality,
		BackgroundStory: payload.Concern,
		BirthDate:       payload.BirthDate,
		BirthTime:       payload.BirthTime,
		SpeakingStyle:   payload.SpeakingStyle,
	}, nil
}

func (g *fortuneGeneratorImpl) GenerateReply(ctx context.Context, character *entity.Character, history []entity.Message, userText string) (string, error) {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, &schema.Message{
		Role:    schema.System,
		Content: fmt.Sprintf("당신은 다음과 같은 인물입니다:\n%s\n\n사주를 보러 온 손님으로서 자연스럽게 대화하세요.", characterContext(character)),
	})
	for i := range history {
		role := schema.Assistant
		if history[i].Speaker == entity.SpeakerUser {
			role = schema.User
		}
		msgs = append(msgs, &schema.Message{Role: role, Content: history[i].Content})
	}
	msgs = append(msgs, &schema.Message{Role: schema.User, Content: userText})

	resp, err := g.chatModel.Generate(ctx, msgs,
		model.WithTemperature(0.7),
		model.WithMaxTokens(200),
	)
	if err != nil {
		zlog.Error("reply generation call failed", zap.Error(err))
		return "", fmt.Errorf("reply generation failed")
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		zlog.Error("reply generation returned empty content")
		return "", fmt.Errorf("reply generation failed")
	}
	// 不做结构校验，非空即接受
	return reply, nil
}

// readingPayload 解读结果约定的 JSON 结构
type readingPayload struct {
	FortuneAnalysis     string `json:"fortune_analysis"`
	PersonalityAnalysis string `json:"personality_analysis"`
	Advice              string `json:"advice"`
	Summary             string `json:"summary"`
}

func (g *fortuneGeneratorImpl) GenerateReading(ctx context.Context, character *entity.Character, transcript []entity.Message) (*entity.FortuneResult, error) {
	var sb strings.Builder
	for i := range transcript {
		speaker := character.Name
		if transcript[i].Speaker == entity.SpeakerUser {
			speaker = "상담가"
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(transcript[i].Content)
		sb.WriteString("\n")
	}

	msgs := []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(readingUserPrompt, characterContext(character), sb.String())},
	}

	resp, err := g.chatModel.Generate(ctx, msgs,
		model.WithTemperature(0.7),
		model.WithMaxTokens(800),
	)
	if err != nil {
		zlog.Error("reading generation call failed", zap.Error(err))
		return nil, fmt.Errorf("reading generation failed")
	}

	var payload readingPayload
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &payload); err != nil {
		zlog.Error("reading generation returned unparseable content",
			zap.Error(err), zap.Int("content_len", len(resp.Content)))
		return nil, fmt.Errorf("reading generation failed")
	}
	if payload.FortuneAnalysis == "" || payload.PersonalityAnalysis == "" ||
		payload.Advice == "" || payload.Summary == "" {
		zlog.Error("reading generation returned incomplete fields")
		return nil, fmt.Errorf("reading generation failed")
	}

	return &entity.FortuneResult{
		FortuneAnalysis:     payload.FortuneAnalysis,
		PersonalityAnalysis: payload.PersonalityAnalysis,
		Advice:              payload.Advice,
		Summary:             payload.Summary,
	}, nil
}

// characterContext 把档案字段折进固定模板
func characterContext(ch *entity.Character) string {
	return fmt.Sprintf(
		"이름: %s\n나이: %d세\n성별: %s\n직업: %s\n성격: %s\n현재 고민: %s\n생년월일시: %s %s\n말투: %s",
		ch.Name, ch.Age, ch.Gender, ch.Occupation, ch.Personality,
		ch.BackgroundStory, ch.BirthDate, ch.BirthTime, ch.SpeakingStyle,
	)
}

// extractJSON 去掉 markdown 代码块包裹，截取首尾花括号之间的内容
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
