package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taxregimes/taxregimes/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(summary *domain.CalculationSummary) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// RulesAware is implemented by formatters that print the rule set they were run with
type RulesAware interface {
	WithRules(rules domain.TaxRules) Formatter
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.CalculationSummary) ([]byte, error)
}

func (ff FormatterFunc) Format(s *domain.CalculationSummary) ([]byte, error) { return ff.F(s) }
func (ff FormatterFunc) Name() string                                       { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file with extension
// ext in dir. It returns the path written.
func WriteFormatted(f Formatter, summary *domain.CalculationSummary, dir, ext string) (string, error) {
	data, err := f.Format(summary)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("tax_regimes_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveReport writes the summary in the named format to a timestamped file in dir
func SaveReport(dir string, summary *domain.CalculationSummary, format string, rules *domain.TaxRules) (string, error) {
	f, err := resolveFormatter(format, rules)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, summary, dir, FileExtension(f.Name()))
}

// FileExtension returns the file extension for a formatter name or alias
func FileExtension(format string) string {
	switch NormalizeFormatName(format) {
	case "csv", "monthly-csv":
		return "csv"
	case "html":
		return "html"
	case "json":
		return "json"
	default:
		return "txt"
	}
}

func resolveFormatter(format string, rules *domain.TaxRules) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	if ra, ok := f.(RulesAware); ok && rules != nil {
		f = ra.WithRules(*rules)
	}
	return f, nil
}

// GenerateReport formats the summary with the named formatter and writes it to w
func GenerateReport(w io.Writer, summary *domain.CalculationSummary, format string, rules *domain.TaxRules) error {
	f, err := resolveFormatter(format, rules)
	if err != nil {
		return err
	}
	data, err := f.Format(summary)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVMonthlyExporter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"":                "console",
	"console-verbose": "console",
	"verbose":         "console",
	"table":           "console-lite",
	"csv-summary":     "csv",
	"csv-monthly":     "monthly-csv",
	"html-report":     "html",
	"json-pretty":     "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
