// Package ui holds the lipgloss styles and table rendering shared by
// the CLI commands.
package ui

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Color palette.
var (
	green  = lipgloss.Color("#22C55E")
	yellow = lipgloss.Color("#EAB308")
	red    = lipgloss.Color("#F43F5E")
	cyan   = lipgloss.Color("#22D3EE")
	slate  = lipgloss.Color("#94A3B8")
)

var (
	Success = lipgloss.NewStyle().Foreground(green)
	Warn    = lipgloss.NewStyle().Foreground(yellow)
	Error   = lipgloss.NewStyle().Foreground(red).Bold(true)
	Accent  = lipgloss.NewStyle().Foreground(cyan)
	Dim     = lipgloss.NewStyle().Foreground(slate)
	Bold    = lipgloss.NewStyle().Bold(true)

	// Critical marks the highlighted token in a study sheet.
	Critical = lipgloss.NewStyle().Foreground(red).Bold(true).Reverse(true)
)

// Table renders a bordered table with a bold header row.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Dim).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return Bold.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}
