// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"testing"

	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/model"
	"github.com/jeranaias/stackchat-tui/internal/state"
)

func buildSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	store := state.NewStore(config.DefaultSettings())
	id := store.Create()
	store.AppendExchange(id, model.NewUserMessage("Hello"), model.NewPendingMessage())
	temp := 0.4
	store.UpdateSettings(config.Patch{Temperature: &temp})
	return store.Snapshot()
}

// =============================================================================
// ADAPTER TESTS
// =============================================================================

func TestAdapter_RoundTrip(t *testing.T) {
	adapter := NewAdapter(NewMemoryStorage())
	snap := buildSnapshot(t)

	if err := adapter.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := adapter.Load()

	if !got.Found {
		t.Fatal("Found = false after save")
	}
	if got.CurrentID != snap.CurrentID {
		t.Errorf("CurrentID = %q, want %q", got.CurrentID, snap.CurrentID)
	}
	if len(got.Conversations) != 1 {
		t.Fatalf("%d conversations, want 1", len(got.Conversations))
	}
	conv := got.Conversations[snap.CurrentID]
	if conv == nil {
		t.Fatal("current conversation missing from loaded state")
	}
	if conv.Title != "Hello" {
		t.Errorf("Title = %q", conv.Title)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("message count = %d, want 2", conv.MessageCount())
	}
	if !conv.Messages[1].Pending {
		t.Error("pending flag lost in the round trip")
	}
	if got.Settings.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", got.Settings.Temperature)
	}
}

func TestAdapter_MissingRecord(t *testing.T) {
	adapter := NewAdapter(NewMemoryStorage())

	got := adapter.Load()
	if got.Found {
		t.Error("Found = true for an empty store")
	}
	if got.Settings != config.DefaultSettings() {
		t.Error("missing record should load with default settings")
	}
}

func TestAdapter_CorruptRecord(t *testing.T) {
	store := NewMemoryStorage()
	store.Set(StateKey, []byte("{not json"))

	got := NewAdapter(store).Load()
	if got.Found {
		t.Error("Found = true for a corrupt record")
	}
	if got.Settings != config.DefaultSettings() {
		t.Error("corrupt record should load with default settings")
	}
}

func TestAdapter_PartialSettingsMerge(t *testing.T) {
	store := NewMemoryStorage()
	store.Set(StateKey, []byte(`{
		"conversations": {},
		"currentConversationId": "",
		"settings": {"theme": "dark", "temperature": 1.5}
	}`))

	got := NewAdapter(store).Load()
	if !got.Found {
		t.Fatal("Found = false for a valid record")
	}
	if got.Settings.Theme != "dark" {
		t.Errorf("Theme = %q, want saved value", got.Settings.Theme)
	}
	if got.Settings.Temperature != 1.5 {
		t.Errorf("Temperature = %v, want saved value", got.Settings.Temperature)
	}
	// Fields missing from the record keep their defaults.
	defaults := config.DefaultSettings()
	if got.Settings.APIURL != defaults.APIURL {
		t.Errorf("APIURL = %q, want default", got.Settings.APIURL)
	}
	if got.Settings.DefaultModel != defaults.DefaultModel {
		t.Errorf("DefaultModel = %q, want default", got.Settings.DefaultModel)
	}
}

func TestAdapter_NilConversationsLoadAsEmptyMap(t *testing.T) {
	store := NewMemoryStorage()
	store.Set(StateKey, []byte(`{"currentConversationId": ""}`))

	got := NewAdapter(store).Load()
	if !got.Found {
		t.Fatal("Found = false")
	}
	if got.Conversations == nil {
		t.Error("Conversations should never load as nil")
	}
}
