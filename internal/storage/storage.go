package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"wabot/datastore"
	"wabot/internal/moderation"
)

const commandHistoryLimit = 20

// Storage is the typed facade over the JSON datastore. Keys are chat JIDs.
type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one executed-command bookkeeping entry.
type CommandHistoryRecord struct {
	ChatID   string    `json:"chat_id"`
	Sender   string    `json:"sender"`
	PushName string    `json:"push_name"`
	Command  string    `json:"command"`
	Param    string    `json:"param"`
	Datetime time.Time `json:"datetime"`
}

// Record is everything persisted for one chat.
type Record struct {
	Settings            *moderation.Settings   `json:"settings,omitempty"`
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history,omitempty"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getRecord decodes the stored record for a chat, or returns nil when the
// chat has never been written. The datastore hands back map[string]any after
// a cold load, so decoding goes through a JSON round trip.
func (s *Storage) getRecord(chatID string) (*Record, error) {
	data, exists := s.ds.Get(chatID)
	if !exists {
		return nil, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return &record, nil
}

// GroupSettings returns the moderation settings for a chat, or nil when none
// exist. No record is created on read; absence means "all filters off".
func (s *Storage) GroupSettings(chatID string) *moderation.Settings {
	record, err := s.getRecord(chatID)
	if err != nil || record == nil {
		return nil
	}
	return record.Settings
}

// UpdateGroupSettings mutates the settings for a chat through fn, lazily
// creating an all-off record on first use, and flushes the whole file.
func (s *Storage) UpdateGroupSettings(chatID string, fn func(*moderation.Settings)) error {
	record, err := s.getRecord(chatID)
	if err != nil {
		return err
	}
	if record == nil {
		record = &Record{}
	}
	if record.Settings == nil {
		record.Settings = &moderation.Settings{}
	}

	fn(record.Settings)

	s.ds.Add(chatID, record)
	return s.ds.SaveToFile()
}

// AppendCommandToHistory records one executed command for a chat, keeping
// only the most recent entries.
func (s *Storage) AppendCommandToHistory(chatID string, rec CommandHistoryRecord) error {
	record, err := s.getRecord(chatID)
	if err != nil {
		return err
	}
	if record == nil {
		record = &Record{}
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, rec)
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	s.ds.Add(chatID, record)
	return nil
}

// FetchCommandHistory returns the recorded commands for a chat.
func (s *Storage) FetchCommandHistory(chatID string) ([]CommandHistoryRecord, error) {
	record, err := s.getRecord(chatID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return record.CommandsHistoryList, nil
}
