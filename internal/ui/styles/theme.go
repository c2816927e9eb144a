// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the styled components for the application.
type Theme struct {
	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar              lipgloss.Style
	SidebarTitle         lipgloss.Style
	ConversationItem     lipgloss.Style
	ConversationSelected lipgloss.Style
	ConversationMeta     lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	MessageBody    lipgloss.Style
	Timestamp      lipgloss.Style
	PendingText    lipgloss.Style
	FailedText     lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS BAR STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	StatusBar      lipgloss.Style
	StatusOnline   lipgloss.Style
	StatusOffline  lipgloss.Style
	StatusChecking lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
}

// NewTheme builds the default theme. AdaptiveColor handles light/dark
// terminals; the configured theme overrides detection via
// lipgloss.SetHasDarkBackground before this is called.
func NewTheme() *Theme {
	return &Theme{
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(Overlay).
			Padding(0, 1),
		SidebarTitle: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),
		ConversationItem: lipgloss.NewStyle().
			Foreground(TextSecondary),
		ConversationSelected: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),
		ConversationMeta: lipgloss.NewStyle().
			Foreground(TextMuted),

		UserLabel: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),
		AssistantLabel: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),
		SystemLabel: lipgloss.NewStyle().
			Foreground(TextMuted).
			Bold(true),
		MessageBody: lipgloss.NewStyle().
			Foreground(TextPrimary),
		Timestamp: lipgloss.NewStyle().
			Foreground(TextMuted),
		PendingText: lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true),
		FailedText: lipgloss.NewStyle().
			Foreground(Rose),

		InputContainer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Overlay),
		StatusBar: lipgloss.NewStyle().
			Background(SurfaceDim).
			Foreground(TextSecondary).
			Padding(0, 1),
		StatusOnline: lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true),
		StatusOffline: lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true),
		StatusChecking: lipgloss.NewStyle().
			Foreground(Amber),
		ShortcutKey: lipgloss.NewStyle().
			Foreground(Cyan),
		ShortcutDesc: lipgloss.NewStyle().
			Foreground(TextMuted),
	}
}

// Resize records the terminal dimensions used by layout math.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
}
