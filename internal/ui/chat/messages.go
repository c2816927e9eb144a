// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/stackchat-tui/internal/app"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// ViewUpdatedMsg carries a fresh read model from the controller. main
// forwards controller publications into the Bubble Tea loop as this
// message.
type ViewUpdatedMsg struct {
	View app.View
}

// SendRejectedMsg reports a send the controller refused (empty input,
// reply in flight, input disabled). Shown transiently in the status bar.
type SendRejectedMsg struct {
	Err error
}

// statusClearMsg clears a transient status bar notice.
type statusClearMsg struct{}
