package output

import (
	"encoding/json"

	"github.com/taxregimes/taxregimes/internal/domain"
)

// JSONFormatter serializes the calculation summary as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
