package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header   lipgloss.Style
	status   lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	title    lipgloss.Style
	content  lipgloss.Style
}

func defaultStyles() styles {
	item := lipgloss.NewStyle().
		PaddingLeft(1).
		MarginBottom(1)

	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		item: item,
		selected: item.
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("212")).
			PaddingLeft(0),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		content: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}
