package tui

import (
	"github.com/taxregimes/taxregimes/internal/domain"
)

// InputLoadedMsg signals the input file has been parsed
type InputLoadedMsg struct {
	Input domain.CalcInput
}

// CalculationCompleteMsg carries the result of an engine run
type CalculationCompleteMsg struct {
	Input   domain.CalcInput
	Summary *domain.CalculationSummary
	Err     error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
