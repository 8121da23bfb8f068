package respond

// 会话阶段
const (
	PhaseNoCharacter = "no_character"
	PhaseActive      = "active"
	PhaseEnded       = "ended"
)

type CharacterCard struct {
	CharacterId   string `json:"character_id,omitempty"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Occupation    string `json:"occupation"`
	Personality   string `json:"personality"`
	Concern       string `json:"concern"`
	BirthDate     string `json:"birth_date"`
	BirthTime     string `json:"birth_time"`
	SpeakingStyle string `json:"speaking_style"`
	ImageUrl      string `json:"image_url,omitempty"`
}

type MessageItem struct {
	Speaker   string `json:"speaker"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type FortuneReading struct {
	FortuneAnalysis     string `json:"fortune_analysis"`
	PersonalityAnalysis string `json:"personality_analysis"`
	Advice              string `json:"advice"`
	Summary             string `json:"summary"`
}

// ConsultState 每次操作后整体重渲染所用的完整视图状态
type ConsultState struct {
	Phase     string          `json:"phase"`
	SessionId string          `json:"session_id,omitempty"`
	Character *CharacterCard  `json:"character,omitempty"`
	Messages  []MessageItem   `json:"messages"`
	Reading   *FortuneReading `json:"reading,omitempty"`
}
