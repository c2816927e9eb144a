// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/stackchat-tui/internal/exchange"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case ViewUpdatedMsg:
		m.view = msg.View
		if m.ready {
			m.viewport.SetContent(m.renderTranscript())
			if m.view.Settings.AutoScroll {
				m.viewport.GotoBottom()
			}
		}
		return m, nil

	case SendRejectedMsg:
		m.notice = rejectionNotice(msg.Err)
		return m, clearNoticeAfter(3 * time.Second)

	case statusClearMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.NewConv):
		m.controller.NewConversation()
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteConv):
		if m.view.Current != nil {
			m.controller.DeleteConversation(m.view.Current.ID)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NextConv):
		return m.cycleConversation(1), nil

	case key.Matches(msg, m.keyMap.PrevConv):
		return m.cycleConversation(-1), nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input text to the controller. The text is cleared
// only on acceptance so a rejected message is not lost.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if err := m.controller.SendMessage(context.Background(), text); err != nil {
		return m, func() tea.Msg { return SendRejectedMsg{Err: err} }
	}
	m.input.Reset()
	return m, nil
}

// cycleConversation moves the selection through the sidebar list.
func (m Model) cycleConversation(delta int) Model {
	if len(m.view.Conversations) == 0 {
		return m
	}
	idx := m.sidebarIndex() + delta
	if idx < 0 {
		idx = len(m.view.Conversations) - 1
	}
	if idx >= len(m.view.Conversations) {
		idx = 0
	}
	m.controller.SelectConversation(m.view.Conversations[idx].ID)
	return m
}

func rejectionNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, exchange.ErrSendInFlight):
		return "waiting for the current reply"
	case errors.Is(err, exchange.ErrDisabled):
		return "input is disabled"
	case errors.Is(err, exchange.ErrEmptyMessage):
		return ""
	default:
		return err.Error()
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusClearMsg{} })
}
