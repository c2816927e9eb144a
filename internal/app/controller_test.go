// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/stackchat-tui/internal/api"
	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/exchange"
	"github.com/jeranaias/stackchat-tui/internal/status"
	"github.com/jeranaias/stackchat-tui/internal/storage"
)

// fakeBackend satisfies BackendClient without a network.
type fakeBackend struct {
	mu      sync.Mutex
	baseURL string
	reply   string
	healthy bool
}

func (f *fakeBackend) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.ChatResponse{Message: f.reply, ConversationID: req.ConversationID}, nil
}

func (f *fakeBackend) Probe(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthy, nil
}

func (f *fakeBackend) SetBaseURL(baseURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseURL = baseURL
}

func (f *fakeBackend) getBaseURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baseURL
}

func newController(store storage.Storage) (*Controller, *fakeBackend) {
	backend := &fakeBackend{reply: "Hello!", healthy: true}
	return New(backend, store, config.DefaultSettings()), backend
}

// =============================================================================
// INTENT TESTS
// =============================================================================

func TestController_NewConversation(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())

	id := c.NewConversation()
	v := c.View()
	require.NotNil(t, v.Current)
	assert.Equal(t, id, v.Current.ID)
	assert.Len(t, v.Conversations, 1)
}

func TestController_SelectAndDelete(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())

	first := c.NewConversation()
	second := c.NewConversation()

	c.SelectConversation(first)
	assert.Equal(t, first, c.View().Current.ID)

	c.DeleteConversation(first)
	v := c.View()
	assert.Nil(t, v.Current)
	assert.Len(t, v.Conversations, 1)
	assert.Equal(t, second, v.Conversations[0].ID)
}

func TestController_SendMessage(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())

	require.NoError(t, c.SendMessage(context.Background(), "Hi there"))
	c.Close()

	v := c.View()
	require.NotNil(t, v.Current)
	assert.Equal(t, "Hi there", v.Current.Title)
	require.Equal(t, 2, v.Current.MessageCount())
	assert.Equal(t, "Hello!", v.Current.Messages[1].Content)
}

func TestController_SendMessage_Rejections(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())

	assert.ErrorIs(t, c.SendMessage(context.Background(), "  "), exchange.ErrEmptyMessage)

	c.SetInputDisabled(true)
	assert.ErrorIs(t, c.SendMessage(context.Background(), "Hi"), exchange.ErrDisabled)
	assert.True(t, c.View().InputDisabled)
}

func TestController_UpdateSettingsRepointsClient(t *testing.T) {
	c, backend := newController(storage.NewMemoryStorage())

	url := "http://10.0.0.5:9000"
	c.UpdateSettings(config.Patch{APIURL: &url})

	assert.Equal(t, url, c.View().Settings.APIURL)
	assert.Equal(t, url, backend.getBaseURL())
}

func TestController_ReloadSettings(t *testing.T) {
	c, backend := newController(storage.NewMemoryStorage())

	next := config.DefaultSettings()
	next.APIURL = "http://reloaded:8000"
	next.Theme = "dark"
	c.ReloadSettings(next)

	v := c.View()
	assert.Equal(t, "dark", v.Settings.Theme)
	assert.Equal(t, "http://reloaded:8000", backend.getBaseURL())
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestController_PersistsEveryIntent(t *testing.T) {
	store := storage.NewMemoryStorage()
	c, _ := newController(store)

	id := c.NewConversation()

	data, err := store.Get(storage.StateKey)
	require.NoError(t, err, "creating a conversation must persist immediately")

	var record struct {
		CurrentConversationID string `json:"currentConversationId"`
	}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, id, record.CurrentConversationID)
}

func TestController_RestoresAcrossRestart(t *testing.T) {
	store := storage.NewMemoryStorage()

	c, _ := newController(store)
	require.NoError(t, c.SendMessage(context.Background(), "remember me"))
	c.Close()

	restarted, _ := newController(store)
	v := restarted.View()
	require.NotNil(t, v.Current)
	assert.Equal(t, "remember me", v.Current.Title)
	assert.Equal(t, 2, v.Current.MessageCount())
}

func TestController_StartupOverridesBeatPersistedSettings(t *testing.T) {
	store := storage.NewMemoryStorage()

	// First run: persist a record carrying its own settings.
	first, _ := newController(store)
	apiURL := "http://persisted:8000"
	modelName := "persisted-model"
	first.UpdateSettings(config.Patch{APIURL: &apiURL, DefaultModel: &modelName})
	first.Close()

	// Second run arrives with a flag/env/file override for the URL only.
	flags := config.DefaultSettings()
	flags.APIURL = "http://flag:9999"
	backend := &fakeBackend{reply: "ok", healthy: true}
	c := New(backend, store, flags)

	v := c.View()
	assert.Equal(t, "http://flag:9999", v.Settings.APIURL, "startup override must win")
	assert.Equal(t, "http://flag:9999", backend.getBaseURL())
	assert.Equal(t, "persisted-model", v.Settings.DefaultModel,
		"fields without an override keep their persisted value")
}

func TestController_RestoreDoesNotNotify(t *testing.T) {
	store := storage.NewMemoryStorage()
	c, _ := newController(store)
	c.NewConversation()
	c.Close()

	restarted, _ := newController(store)
	var published int
	restarted.Subscribe(func(View) { published++ })
	assert.Equal(t, 0, published, "restoration happens before subscription, not through it")
}

// =============================================================================
// SUBSCRIPTION TESTS
// =============================================================================

func TestController_PublishesViews(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())

	var mu sync.Mutex
	var views []View
	c.Subscribe(func(v View) {
		mu.Lock()
		views = append(views, v)
		mu.Unlock()
	})

	c.NewConversation()
	require.NoError(t, c.SendMessage(context.Background(), "Hi"))
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	// create, user+placeholder append, resolution: at least three views.
	require.GreaterOrEqual(t, len(views), 3)
	last := views[len(views)-1]
	require.NotNil(t, last.Current)
	assert.False(t, last.Current.Messages[1].Pending)
}

func TestController_ConnectivityReachesView(t *testing.T) {
	c, _ := newController(storage.NewMemoryStorage())
	assert.Equal(t, status.StatusChecking, c.View().Connectivity)
}
