// Package tuistyles holds the lipgloss palette shared by the TUI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/pkg/money"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F4A259")
	ColorSuccess = lipgloss.Color("#43BF6D")
	ColorDanger  = lipgloss.Color("#E0565B")
	ColorMuted   = lipgloss.Color("#6C6C6C")
	ColorBorder  = lipgloss.Color("#3C3C3C")
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	UnavailableStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	PromptStyle      = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// MetricTrendStyle colors a change green when it is good for the owner
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole rubles
func FormatCurrency(d decimal.Decimal) string {
	return money.FormatRub(d)
}
