package main

import (
	"strconv"
	"strings"

	"ceacalc/internal/cea"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors for verdict and summary lines.
var (
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	infoColor    = lipgloss.Color("#2196F3")
	mutedColor   = lipgloss.Color("240")
)

// styles holds the terminal styles for one invocation.
type styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			Title: plain, Header: plain, Body: plain, Muted: plain,
			Success: plain, Warning: plain, Info: plain,
		}
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(infoColor),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(mutedColor),
		Success: lipgloss.NewStyle().Bold(true).Foreground(successColor),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(warningColor),
		Info:    lipgloss.NewStyle().Foreground(infoColor),
	}
}

// renderTable renders a small static table with padded columns.
func renderTable(title string, headers []string, rows [][]string, s styles) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(s.Title.Render(title))
		sb.WriteString("\n")
	}

	for i, h := range headers {
		sb.WriteString(s.Header.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			sb.WriteString(s.Muted.Render("  "))
		}
	}
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(s.Body.Render(pad(cell, widths[i])))
				if i < len(row)-1 {
					sb.WriteString("  ")
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// formatMetric renders a metric for the terminal; the undefined sentinel
// shows as N/A, everything else at two decimal places.
func formatMetric(v float64) string {
	if cea.Undefined(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatAt(v float64, places int) string {
	if cea.Undefined(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}
