// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared helpers for the stackchat application.
//
// It contains the atomic file write used by the persistence layer and the
// rune- and width-aware string helpers used by the terminal views.
package util
