package respond

type SessionItem struct {
	SessionId           string `json:"session_id"`
	Status              string `json:"status"`
	StartedAt           string `json:"started_at"`
	EndedAt             string `json:"ended_at,omitempty"`
	CharacterName       string `json:"character_name,omitempty"`
	CharacterAge        int    `json:"character_age,omitempty"`
	CharacterOccupation string `json:"character_occupation,omitempty"`
}

type SessionDetail struct {
	SessionId string          `json:"session_id"`
	Status    string          `json:"status"`
	StartedAt string          `json:"started_at"`
	EndedAt   string          `json:"ended_at,omitempty"`
	Character *CharacterCard  `json:"character,omitempty"`
	Messages  []MessageItem   `json:"messages"`
	Reading   *FortuneReading `json:"reading,omitempty"`
}
