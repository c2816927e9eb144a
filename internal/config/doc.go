// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings loading and management for stackchat.
//
// Settings carry both backend parameters (API URL, model, temperature,
// max tokens) and UI toggles (theme, auto-scroll, timestamps, sound). They
// load from ~/.stackchat/config.toml or config.json, with STACKCHAT_API_URL
// and STACKCHAT_MODEL environment overrides on top, and are clamped by
// Validate rather than rejected.
//
// The same Settings struct is embedded in the persisted state record; when
// that record is reloaded, MergeSaved gives per-field precedence to saved
// keys over the defaults.
package config
