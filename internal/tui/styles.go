package tui

import "github.com/taxregimes/taxregimes/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles with components
var (
	TitleStyle       = tuistyles.TitleStyle
	SubtitleStyle    = tuistyles.SubtitleStyle
	BorderStyle      = tuistyles.BorderStyle
	UnavailableStyle = tuistyles.UnavailableStyle
	ErrorStyle       = tuistyles.ErrorStyle
	PromptStyle      = tuistyles.PromptStyle
	MetricLabelStyle = tuistyles.MetricLabelStyle

	FormatCurrency = tuistyles.FormatCurrency
)
