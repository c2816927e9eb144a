// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists application state.
//
// The bottom half is a flat key/value Storage interface with a file
// backed implementation (one atomic JSON file per key) and an in-memory
// one. The top half is an Adapter that writes the whole application
// state as a single record under StateKey, using the same field layout
// as the web frontend so a state file moves between the two unchanged.
//
// Reads are forgiving on purpose: a missing or corrupt record loads as
// "nothing saved yet" rather than an error.
package storage
