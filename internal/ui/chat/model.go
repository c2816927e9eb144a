// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stackchat-tui/internal/app"
	"github.com/jeranaias/stackchat-tui/internal/status"
	"github.com/jeranaias/stackchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

const sidebarWidth = 28

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	controller *app.Controller

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Read model, replaced wholesale on every ViewUpdatedMsg
	view app.View

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Transient status bar notice
	notice string
}

// NewModel creates the chat screen bound to a controller.
func NewModel(controller *app.Controller) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.PromptStyle = theme.UserLabel
	input.CharLimit = 0
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.PendingText

	return Model{
		controller: controller,
		theme:      theme,
		view:       controller.View(),
		input:      input,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// hasPendingReply reports whether the current conversation is waiting
// on the backend.
func (m Model) hasPendingReply() bool {
	if m.view.Current == nil {
		return false
	}
	return m.view.Current.HasPending()
}

// connectivityBadge renders the status bar connectivity indicator.
func (m Model) connectivityBadge() string {
	switch m.view.Connectivity {
	case status.StatusOnline:
		return m.theme.StatusOnline.Render("● online")
	case status.StatusOffline:
		return m.theme.StatusOffline.Render("● offline")
	default:
		return m.theme.StatusChecking.Render("● checking")
	}
}

// layout recomputes component sizes after a resize.
func (m *Model) layout() {
	m.theme.Resize(m.width, m.height)

	transcriptWidth := m.width - sidebarWidth - 1
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	// One line each for the input border, input, and status bar.
	transcriptHeight := m.height - 3
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(transcriptWidth, transcriptHeight)
		m.ready = true
	} else {
		m.viewport.Width = transcriptWidth
		m.viewport.Height = transcriptHeight
	}
	m.input.Width = transcriptWidth - len(m.input.Prompt) - 1

	m.viewport.SetContent(m.renderTranscript())
	if m.view.Settings.AutoScroll {
		m.viewport.GotoBottom()
	}
}

// sidebarIndex returns the position of the current conversation in the
// sorted list, or -1.
func (m Model) sidebarIndex() int {
	if m.view.Current == nil {
		return -1
	}
	for i, conv := range m.view.Conversations {
		if conv.ID == m.view.Current.ID {
			return i
		}
	}
	return -1
}

var _ tea.Model = Model{}

// joinHorizontal is a seam for view composition, kept separate so the
// view code reads top to bottom.
func joinHorizontal(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
