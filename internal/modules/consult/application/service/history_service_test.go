package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	consultEntity "SaDam/internal/modules/consult/domain/entity"
)

func seedSession(t *testing.T, env *testEnv, name string, startedAt time.Time, status string) string {
	t.Helper()
	ch := testPersona()
	ch.Name = name
	if err := env.characterRepo.Create(ch); err != nil {
		t.Fatalf("seed character failed: %v", err)
	}
	sess := &consultEntity.Session{
		CharacterId: ch.Id,
		UserId:      "anonymous",
		Status:      status,
		StartedAt:   startedAt,
	}
	if err := env.sessionRepo.Create(sess); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}
	return sess.Id
}

func TestGetSessionListNewestFirst(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	base := time.Now()
	seedSession(t, env, "첫번째 손님", base.Add(-2*time.Hour), consultEntity.SessionStatusCompleted)
	seedSession(t, env, "두번째 손님", base.Add(-1*time.Hour), consultEntity.SessionStatusCompleted)
	seedSession(t, env, "세번째 손님", base, consultEntity.SessionStatusActive)

	items, err := hist.GetSessionList("anonymous", 10)
	if err != nil {
		t.Fatalf("GetSessionList failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].CharacterName != "세번째 손님" || items[2].CharacterName != "첫번째 손님" {
		t.Fatalf("expected newest first, got %s ... %s", items[0].CharacterName, items[2].CharacterName)
	}
	if items[0].CharacterAge != 35 || items[0].CharacterOccupation == "" {
		t.Fatalf("character summary missing: %+v", items[0])
	}
}

func TestGetSessionListHonorsLimit(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	base := time.Now()
	for i := 0; i < 5; i++ {
		seedSession(t, env, "손님", base.Add(time.Duration(i)*time.Minute), consultEntity.SessionStatusCompleted)
	}

	items, err := hist.GetSessionList("anonymous", 3)
	if err != nil {
		t.Fatalf("GetSessionList failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestGetSessionListMissingCharacterIsTolerated(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	sess := &consultEntity.Session{
		CharacterId: "00000000-0000-0000-0000-000000000000",
		UserId:      "anonymous",
		Status:      consultEntity.SessionStatusCompleted,
		StartedAt:   time.Now(),
	}
	if err := env.sessionRepo.Create(sess); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}

	items, err := hist.GetSessionList("anonymous", 10)
	if err != nil {
		t.Fatalf("GetSessionList should tolerate a missing character: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].CharacterName != "" {
		t.Fatalf("character summary should be empty, got %q", items[0].CharacterName)
	}
}

func TestGetSessionDetailNotFound(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	if _, err := hist.GetSessionDetail("b2c2d2e2-0000-0000-0000-000000000000"); err == nil {
		t.Fatal("expected not found error")
	}
	if _, err := hist.GetSessionDetail(""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestGetSessionDetailTranscriptAscending(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	sessionID := seedSession(t, env, "임수진", time.Now().Add(-time.Hour), consultEntity.SessionStatusCompleted)
	base := time.Now()
	// 乱序写入，读出应按时间升序
	for i, off := range []time.Duration{2 * time.Minute, 0, time.Minute} {
		msg := &consultEntity.Message{
			SessionId: sessionID,
			Speaker:   consultEntity.SpeakerUser,
			Content:   []string{"셋", "하나", "둘"}[i],
			Timestamp: base.Add(off),
		}
		if err := env.messageRepo.Create(msg); err != nil {
			t.Fatalf("seed message failed: %v", err)
		}
	}

	detail, err := hist.GetSessionDetail(sessionID)
	if err != nil {
		t.Fatalf("GetSessionDetail failed: %v", err)
	}
	var got []string
	for _, m := range detail.Messages {
		got = append(got, m.Content)
	}
	want := []string{"하나", "둘", "셋"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("transcript order mismatch: got %v want %v", got, want)
	}
	if detail.Reading != nil {
		t.Fatal("no reading was seeded")
	}
}

func TestGetSessionDetailIdempotent(t *testing.T) {
	env := newTestEnv()
	hist := NewHistoryService(env.characterRepo, env.sessionRepo, env.messageRepo, env.fortuneRepo)

	// 走完整个生命周期后反复读取，结果应一致
	if _, err := env.svc.Begin(context.Background(), "anonymous"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := env.svc.SendMessage(context.Background(), "anonymous", "요즘 일이 잘 안 풀려요"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	st, err := env.svc.End(context.Background(), "anonymous")
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}

	first, err := hist.GetSessionDetail(st.SessionId)
	if err != nil {
		t.Fatalf("first GetSessionDetail failed: %v", err)
	}
	second, err := hist.GetSessionDetail(st.SessionId)
	if err != nil {
		t.Fatalf("second GetSessionDetail failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated reads must return identical details")
	}
	if first.Status != consultEntity.SessionStatusCompleted {
		t.Fatalf("expected completed session, got %s", first.Status)
	}
	if first.Reading == nil {
		t.Fatal("reading should be present in detail")
	}
	if len(first.Messages) != 3 {
		t.Fatalf("expected 3 messages in transcript, got %d", len(first.Messages))
	}
}

func TestMarkCompletedIsMonotonic(t *testing.T) {
	env := newTestEnv()

	sessionID := seedSession(t, env, "임수진", time.Now(), consultEntity.SessionStatusActive)
	first := time.Now()
	if err := env.sessionRepo.MarkCompleted(sessionID, first); err != nil {
		t.Fatalf("first MarkCompleted failed: %v", err)
	}
	// 二次完成不得改写 ended_at
	if err := env.sessionRepo.MarkCompleted(sessionID, first.Add(time.Hour)); err != nil {
		t.Fatalf("second MarkCompleted failed: %v", err)
	}

	sess, err := env.sessionRepo.GetByID(sessionID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if sess.Status != consultEntity.SessionStatusCompleted {
		t.Fatalf("expected completed, got %s", sess.Status)
	}
	if !sess.EndedAt.Valid || !sess.EndedAt.Time.Equal(first) {
		t.Fatalf("ended_at must keep the first completion time: %+v", sess.EndedAt)
	}
}
