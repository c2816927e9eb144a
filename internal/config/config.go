// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings is the user-tunable configuration record. It is part of the
// persisted state, so JSON field names match the web frontend's layout.
type Settings struct {
	// APIURL is the base URL of the OllamaStack backend.
	APIURL string `toml:"api_url" json:"apiUrl"`
	// DefaultModel is the model requested for each send.
	DefaultModel string `toml:"default_model" json:"defaultModel"`
	// Temperature is the sampling temperature, clamped to [0, 2].
	Temperature float64 `toml:"temperature" json:"temperature"`
	// MaxTokens bounds the reply length, clamped to [1, 128000].
	MaxTokens int `toml:"max_tokens" json:"maxTokens"`
	// Theme is the UI theme: "light", "dark", or "system".
	Theme string `toml:"theme" json:"theme"`
	// AutoScroll keeps the transcript pinned to the latest message.
	AutoScroll bool `toml:"auto_scroll" json:"autoScroll"`
	// ShowTimestamps displays per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps" json:"showTimestamps"`
	// EnableSound plays a bell when a reply arrives.
	EnableSound bool `toml:"enable_sound" json:"enableSound"`
}

// DefaultSettings returns the built-in defaults. They match the OllamaStack
// web frontend so a shared backend behaves identically from either client.
func DefaultSettings() Settings {
	return Settings{
		APIURL:         "http://localhost:8000",
		DefaultModel:   "llama3",
		Temperature:    0.7,
		MaxTokens:      1000,
		Theme:          "light",
		AutoScroll:     true,
		ShowTimestamps: false,
		EnableSound:    false,
	}
}

// Validate clamps out-of-range values and resets unparseable ones to their
// defaults. It never fails: a bad config degrades, it does not abort.
func (s *Settings) Validate() {
	defaults := DefaultSettings()

	if s.Temperature < 0 {
		s.Temperature = 0
	} else if s.Temperature > 2 {
		s.Temperature = 2
	}

	if s.MaxTokens < 1 {
		s.MaxTokens = defaults.MaxTokens
	} else if s.MaxTokens > 128000 {
		s.MaxTokens = 128000
	}

	switch s.Theme {
	case "light", "dark", "system":
	default:
		s.Theme = defaults.Theme
	}

	if s.APIURL == "" {
		s.APIURL = defaults.APIURL
	} else if u, err := url.Parse(s.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		s.APIURL = defaults.APIURL
	}

	if s.DefaultModel == "" {
		s.DefaultModel = defaults.DefaultModel
	}
}

// =============================================================================
// PARTIAL UPDATES
// =============================================================================

// Patch is a partial settings update; nil fields are left unchanged.
type Patch struct {
	APIURL         *string
	DefaultModel   *string
	Temperature    *float64
	MaxTokens      *int
	Theme          *string
	AutoScroll     *bool
	ShowTimestamps *bool
	EnableSound    *bool
}

// Apply merges the patch into the settings and revalidates.
func (s *Settings) Apply(p Patch) {
	if p.APIURL != nil {
		s.APIURL = *p.APIURL
	}
	if p.DefaultModel != nil {
		s.DefaultModel = *p.DefaultModel
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.ShowTimestamps != nil {
		s.ShowTimestamps = *p.ShowTimestamps
	}
	if p.EnableSound != nil {
		s.EnableSound = *p.EnableSound
	}
	s.Validate()
}

// Diff returns a patch of the fields where s differs from base. Used to
// re-apply startup overrides (config file, env vars, flags) on top of a
// persisted settings record, so those layers keep winning after the
// first run.
func (s Settings) Diff(base Settings) Patch {
	var p Patch
	if s.APIURL != base.APIURL {
		p.APIURL = &s.APIURL
	}
	if s.DefaultModel != base.DefaultModel {
		p.DefaultModel = &s.DefaultModel
	}
	if s.Temperature != base.Temperature {
		p.Temperature = &s.Temperature
	}
	if s.MaxTokens != base.MaxTokens {
		p.MaxTokens = &s.MaxTokens
	}
	if s.Theme != base.Theme {
		p.Theme = &s.Theme
	}
	if s.AutoScroll != base.AutoScroll {
		p.AutoScroll = &s.AutoScroll
	}
	if s.ShowTimestamps != base.ShowTimestamps {
		p.ShowTimestamps = &s.ShowTimestamps
	}
	if s.EnableSound != base.EnableSound {
		p.EnableSound = &s.EnableSound
	}
	return p
}

// =============================================================================
// PERSISTED SETTINGS MERGE
// =============================================================================

// MergeSaved shallow-merges a persisted settings record over the defaults:
// fields present in the record win, absent fields keep their default. A
// record that does not parse yields the defaults unchanged.
func MergeSaved(raw json.RawMessage) Settings {
	s := DefaultSettings()
	if len(raw) > 0 {
		// Unmarshalling onto the defaults gives per-field precedence
		// to whatever keys the record actually carries.
		_ = json.Unmarshal(raw, &s)
	}
	s.Validate()
	return s
}

// =============================================================================
// FILE LOADING
// =============================================================================

// Dir returns the stackchat home directory (~/.stackchat), creating it if
// needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".stackchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads settings from the default config file locations, applies
// environment overrides, and validates. Missing or corrupt files fall back
// to defaults.
func Load() Settings {
	dir, err := Dir()
	if err != nil {
		s := DefaultSettings()
		applyEnvOverrides(&s)
		s.Validate()
		return s
	}
	return LoadFrom(dir)
}

// LoadFrom reads settings from config.toml or config.json under dir.
func LoadFrom(dir string) Settings {
	s := DefaultSettings()

	tomlPath := filepath.Join(dir, "config.toml")
	jsonPath := filepath.Join(dir, "config.json")

	if data, err := os.ReadFile(tomlPath); err == nil {
		if err := toml.Unmarshal(data, &s); err != nil {
			s = DefaultSettings()
		}
	} else if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, &s); err != nil {
			s = DefaultSettings()
		}
	}

	applyEnvOverrides(&s)
	s.Validate()
	return s
}

// applyEnvOverrides lets the environment win over file values.
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("STACKCHAT_API_URL"); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv("STACKCHAT_MODEL"); v != "" {
		s.DefaultModel = v
	}
}
