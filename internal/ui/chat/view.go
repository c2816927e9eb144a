// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stackchat-tui/internal/model"
	"github.com/jeranaias/stackchat-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	transcript := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.theme.InputContainer.Width(m.viewport.Width).Render(m.input.View()),
	)
	body := joinHorizontal(m.renderSidebar(), transcript)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	innerWidth := sidebarWidth - 2

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(m.view.Conversations) == 0 {
		b.WriteString(m.theme.ConversationMeta.Render("No conversations yet"))
	}

	selected := m.sidebarIndex()
	for i, conv := range m.view.Conversations {
		title := util.TruncateWidth(conv.Title, innerWidth)
		style := m.theme.ConversationItem
		if i == selected {
			style = m.theme.ConversationSelected
			title = util.TruncateWidth("▸ "+conv.Title, innerWidth)
		}
		b.WriteString(style.Render(util.PadRight(title, innerWidth)))
		b.WriteString("\n")
		meta := util.TruncateWidth(conv.Preview(), innerWidth)
		b.WriteString(m.theme.ConversationMeta.Render(util.PadRight(meta, innerWidth)))
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.height - 1).
		Render(b.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	if m.view.Current == nil {
		return m.theme.ConversationMeta.Render(
			"No conversation selected. Press C-n to start one, or just type.")
	}
	if m.view.Current.IsEmpty() {
		return m.theme.ConversationMeta.Render("Send a message to get started.")
	}

	var b strings.Builder
	for i, msg := range m.view.Current.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMessage(msg *model.Message) string {
	label := m.roleLabel(msg.Role)
	if m.view.Settings.ShowTimestamps {
		label += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	var body string
	switch {
	case msg.Pending:
		body = m.spinner.View() + m.theme.PendingText.Render(" thinking...")
	case msg.IsFailed():
		body = m.theme.MessageBody.Render(msg.Content) + "\n" +
			m.theme.FailedText.Render("✗ "+msg.Error)
	default:
		body = m.theme.MessageBody.Render(msg.Content)
	}

	return label + "\n" + body
}

func (m Model) roleLabel(role model.Role) string {
	switch role {
	case model.RoleUser:
		return m.theme.UserLabel.Render(role.DisplayName())
	case model.RoleAssistant:
		return m.theme.AssistantLabel.Render(role.DisplayName())
	default:
		return m.theme.SystemLabel.Render(role.DisplayName())
	}
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	left := m.connectivityBadge()
	left += m.theme.ShortcutDesc.Render(fmt.Sprintf("  %s @ %s",
		m.view.Settings.DefaultModel, m.view.Settings.APIURL))

	if m.notice != "" {
		left += "  " + m.theme.StatusChecking.Render(m.notice)
	} else if m.hasPendingReply() {
		left += "  " + m.theme.PendingText.Render("sending...")
	}

	shortcuts := strings.Join([]string{
		m.theme.ShortcutKey.Render("C-n") + m.theme.ShortcutDesc.Render(" new"),
		m.theme.ShortcutKey.Render("C-x") + m.theme.ShortcutDesc.Render(" delete"),
		m.theme.ShortcutKey.Render("C-↑/↓") + m.theme.ShortcutDesc.Render(" switch"),
		m.theme.ShortcutKey.Render("C-c") + m.theme.ShortcutDesc.Render(" quit"),
	}, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(
		left + strings.Repeat(" ", gap) + shortcuts)
}
