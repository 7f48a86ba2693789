package storage

import (
	"path/filepath"
	"testing"
	"time"

	"wabot/internal/moderation"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groupdata.json")
	st, err := New(path)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, path
}

func TestGroupSettingsAbsentChat(t *testing.T) {
	st, _ := newTestStorage(t)
	if set := st.GroupSettings("unknown@g.us"); set != nil {
		t.Fatalf("unseen chat must have nil settings, got %+v", set)
	}
}

func TestUpdateGroupSettingsLazyCreate(t *testing.T) {
	st, _ := newTestStorage(t)
	chat := "123@g.us"

	err := st.UpdateGroupSettings(chat, func(s *moderation.Settings) {
		s.Antilink = true
	})
	if err != nil {
		t.Fatalf("UpdateGroupSettings: %v", err)
	}

	set := st.GroupSettings(chat)
	if set == nil || !set.Antilink {
		t.Fatalf("settings not persisted: %+v", set)
	}
	if set.Antimedia {
		t.Fatalf("untouched flags must stay off")
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groupdata.json")
	chat := "123@g.us"

	st, err := New(path)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	err = st.UpdateGroupSettings(chat, func(s *moderation.Settings) {
		s.Antibad = true
		s.BannedWords = []string{"verboten"}
	})
	if err != nil {
		t.Fatalf("UpdateGroupSettings: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	set := st2.GroupSettings(chat)
	if set == nil || !set.Antibad {
		t.Fatalf("settings lost across reopen: %+v", set)
	}
	if len(set.BannedWords) != 1 || set.BannedWords[0] != "verboten" {
		t.Fatalf("banned words lost across reopen: %v", set.BannedWords)
	}
}

func TestCommandHistoryAppendAndFetch(t *testing.T) {
	st, _ := newTestStorage(t)
	chat := "123@g.us"

	rec := CommandHistoryRecord{
		ChatID:   chat,
		Sender:   "628111",
		PushName: "Alice",
		Command:  "ping",
		Datetime: time.Now(),
	}
	if err := st.AppendCommandToHistory(chat, rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := st.FetchCommandHistory(chat)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Command != "ping" || got[0].PushName != "Alice" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestCommandHistoryCapped(t *testing.T) {
	st, _ := newTestStorage(t)
	chat := "123@g.us"

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := st.AppendCommandToHistory(chat, CommandHistoryRecord{
			Command:  "ping",
			Param:    string(rune('a' + i%26)),
			Datetime: time.Now(),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := st.FetchCommandHistory(chat)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != commandHistoryLimit {
		t.Fatalf("history not capped: %d entries", len(got))
	}
}

func TestHistoryAndSettingsCoexist(t *testing.T) {
	st, _ := newTestStorage(t)
	chat := "123@g.us"

	if err := st.AppendCommandToHistory(chat, CommandHistoryRecord{Command: "ping", Datetime: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	err := st.UpdateGroupSettings(chat, func(s *moderation.Settings) { s.Antilink = true })
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if set := st.GroupSettings(chat); set == nil || !set.Antilink {
		t.Fatalf("settings lost: %+v", set)
	}
	got, err := st.FetchCommandHistory(chat)
	if err != nil || len(got) != 1 {
		t.Fatalf("history lost: %v %v", got, err)
	}
}
