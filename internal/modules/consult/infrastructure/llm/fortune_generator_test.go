package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"SaDam/internal/modules/consult/domain/entity"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// fakeChatModel 按队列依次返回预置回复
type fakeChatModel struct {
	replies []string
	err     error
	calls   [][]*schema.Message
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls = append(m.calls, input)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return &schema.Message{Role: schema.Assistant}, nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return &schema.Message{Role: schema.Assistant, Content: reply}, nil
}

func (m *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func sampleCharacter() *entity.Character {
	return &entity.Character{
		Name:            "임수진",
		Age:             35,
		Gender:          "여성",
		Occupation:      "프리랜서 일러스트레이터",
		Personality:     "섬세하고 내성적임",
		BackgroundStory: "클라이언트를 잃고 진로를 고민 중",
		BirthDate:       "1985-07-14",
		BirthTime:       "08:30",
		SpeakingStyle:   "부드럽고 정중한 말투",
	}
}

func TestGeneratePersonaParsesFencedJSON(t *testing.T) {
	fake := &fakeChatModel{replies: []string{
		"```json\n{\"name\": \"임수진\", \"age\": 35, \"gender\": \"여성\", \"occupation\": \"프리랜서 일러스트레이터\", \"personality\": \"섬세함\", \"concern\": \"진로 고민\", \"birth_date\": \"1985-07-14\", \"birth_time\": \"08:30\", \"speaking_style\": \"정중한 말투\"}\n```",
	}}
	gen := NewFortuneGenerator(fake, ChatModelMeta{Model: "gpt-4o-mini"})

	ch, err := gen.GeneratePersona(context.Background())
	if err != nil {
		t.Fatalf("GeneratePersona failed: %v", err)
	}
	if ch.Name != "임수진" || ch.Age != 35 || ch.Gender != "여성" {
		t.Fatalf("unexpected character: %+v", ch)
	}
	if ch.BackgroundStory != "진로 고민" || ch.BirthDate != "1985-07-14" {
		t.Fatalf("concern/birth fields not mapped: %+v", ch)
	}
	if len(fake.calls) != 1 || len(fake.calls[0]) != 2 {
		t.Fatalf("expected one call with system+user messages, got %d calls", len(fake.calls))
	}
	if fake.calls[0][0].Role != schema.System {
		t.Fatalf("first message must be system, got %s", fake.calls[0][0].Role)
	}
}

func TestGeneratePersonaRejectsMalformedContent(t *testing.T) {
	cases := []string{
		"죄송합니다, 인물을 만들 수 없습니다.",
		"{\"age\": 35}",
		"{\"name\": \"임수진\", \"age\": \"서른다섯\"}",
	}
	for _, content := range cases {
		fake := &fakeChatModel{replies: []string{content}}
		gen := NewFortuneGenerator(fake, ChatModelMeta{})
		if _, err := gen.GeneratePersona(context.Background()); err == nil {
			t.Fatalf("expected failure for content %q", content)
		}
	}
}

func TestGeneratePersonaTransportFailure(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("connection refused")}
	gen := NewFortuneGenerator(fake, ChatModelMeta{})
	if _, err := gen.GeneratePersona(context.Background()); err == nil {
		t.Fatal("expected failure on transport error")
	}
}

func TestGenerateReplyBuildsHistoryInOrder(t *testing.T) {
	fake := &fakeChatModel{replies: []string{"요즘 그림이 손에 잡히지 않아서요..."}}
	gen := NewFortuneGenerator(fake, ChatModelMeta{})

	now := time.Now()
	history := []entity.Message{
		{Speaker: entity.SpeakerAI, Content: "안녕하세요, 처음 뵙겠습니다.", Timestamp: now},
		{Speaker: entity.SpeakerUser, Content: "어서 오세요.", Timestamp: now.Add(time.Second)},
	}

	reply, err := gen.GenerateReply(context.Background(), sampleCharacter(), history, "어떤 고민이 있으신가요?")
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if reply != "요즘 그림이 손에 잡히지 않아서요..." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	msgs := fake.calls[0]
	if len(msgs) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d", len(msgs))
	}
	if msgs[0].Role != schema.System {
		t.Fatalf("first message must be system, got %s", msgs[0].Role)
	}
	if msgs[1].Role != schema.Assistant || msgs[2].Role != schema.User {
		t.Fatalf("history roles mismatch: %s %s", msgs[1].Role, msgs[2].Role)
	}
	if msgs[3].Content != "어떤 고민이 있으신가요?" {
		t.Fatalf("last message must be the new user text, got %q", msgs[3].Content)
	}
}

func TestGenerateReplyRejectsEmptyContent(t *testing.T) {
	fake := &fakeChatModel{replies: []string{"   \n"}}
	gen := NewFortuneGenerator(fake, ChatModelMeta{})
	if _, err := gen.GenerateReply(context.Background(), sampleCharacter(), nil, "안녕하세요"); err == nil {
		t.Fatal("expected failure on empty reply")
	}
}

func TestGenerateReadingRequiresAllFields(t *testing.T) {
	full := `{"fortune_analysis": "변화의 기운이 강합니다", "personality_analysis": "섬세한 기질", "advice": "하반기를 기다리세요", "summary": "기다림 끝에 길이 열립니다"}`
	fake := &fakeChatModel{replies: []string{full}}
	gen := NewFortuneGenerator(fake, ChatModelMeta{})

	transcript := []entity.Message{
		{Speaker: entity.SpeakerAI, Content: "안녕하세요"},
		{Speaker: entity.SpeakerUser, Content: "어서 오세요"},
	}
	res, err := gen.GenerateReading(context.Background(), sampleCharacter(), transcript)
	if err != nil {
		t.Fatalf("GenerateReading failed: %v", err)
	}
	if res.FortuneAnalysis == "" || res.PersonalityAnalysis == "" || res.Advice == "" || res.Summary == "" {
		t.Fatalf("all fields must be populated: %+v", res)
	}

	partial := `{"fortune_analysis": "변화의 기운", "personality_analysis": "", "advice": "기다리세요", "summary": "요약"}`
	fake2 := &fakeChatModel{replies: []string{partial}}
	gen2 := NewFortuneGenerator(fake2, ChatModelMeta{})
	if _, err := gen2.GenerateReading(context.Background(), sampleCharacter(), transcript); err == nil {
		t.Fatal("expected failure on incomplete reading")
	}
}

func TestCharacterContextContainsAllFields(t *testing.T) {
	ctx := characterContext(sampleCharacter())
	for _, want := range []string{"임수진", "35세", "여성", "프리랜서 일러스트레이터", "1985-07-14 08:30", "부드럽고 정중한 말투"} {
		if !strings.Contains(ctx, want) {
			t.Fatalf("context missing %q:\n%s", want, ctx)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"물론입니다! 결과는 다음과 같습니다:\n{\"a\": 1}\n감사합니다.", `{"a": 1}`},
		{"no braces here", "no braces here"},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
