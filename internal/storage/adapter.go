// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"

	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/model"
	"github.com/jeranaias/stackchat-tui/internal/state"
)

// StateKey is the single key the whole application state lives under.
const StateKey = "ollamastack-state"

// persistedRecord is the on-disk layout. Field names match the web
// frontend's localStorage record so state files are interchangeable.
type persistedRecord struct {
	Conversations         map[string]*model.Conversation `json:"conversations"`
	CurrentConversationID string                         `json:"currentConversationId"`
	Settings              json.RawMessage                `json:"settings"`
}

// LoadResult is what came back from storage. Found is false when there
// was no usable record; Settings is always populated, falling back to
// defaults field by field.
type LoadResult struct {
	Conversations map[string]*model.Conversation
	CurrentID     string
	Settings      config.Settings
	Found         bool
}

// Adapter persists application state as one JSON record. It never
// propagates read errors: a missing or corrupt record loads as absent
// with default settings, and the next save overwrites it.
type Adapter struct {
	store Storage
}

// NewAdapter wraps a Storage.
func NewAdapter(store Storage) *Adapter {
	return &Adapter{store: store}
}

// Save writes the full snapshot. Marshal errors cannot occur for our
// types, so the only failures are storage failures.
func (a *Adapter) Save(snap state.Snapshot) error {
	settings, err := json.Marshal(snap.Settings)
	if err != nil {
		return err
	}
	record := persistedRecord{
		Conversations:         snap.Conversations,
		CurrentConversationID: snap.CurrentID,
		Settings:              settings,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return a.store.Set(StateKey, data)
}

// Load reads the record back. Absent or unreadable state is reported
// through Found, never as an error.
func (a *Adapter) Load() LoadResult {
	absent := LoadResult{Settings: config.DefaultSettings()}

	data, err := a.store.Get(StateKey)
	if err != nil {
		return absent
	}

	var record persistedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return absent
	}

	conversations := record.Conversations
	if conversations == nil {
		conversations = make(map[string]*model.Conversation)
	}
	return LoadResult{
		Conversations: conversations,
		CurrentID:     record.CurrentConversationID,
		Settings:      config.MergeSaved(record.Settings),
		Found:         true,
	}
}
