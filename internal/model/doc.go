// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: ordered, titled message history with lifecycle timestamps
//   - Message: single message with role, content, timestamp, and the
//     pending/error fields used by the optimistic send protocol
//   - Role: message role enumeration (user, assistant, system)
//
// # Message Lifecycle
//
// A message is created in one of two ways: directly from user input, or as a
// pending assistant placeholder appended right after it. The placeholder is
// mutated in place to its terminal form (Resolve or Fail) and never removed;
// its ID is the handle the exchange uses to locate it when the backend call
// completes.
package model
