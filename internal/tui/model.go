package tui

import (
	"context"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// SortMode selects the table order
type SortMode int

const (
	SortByBurden SortMode = iota
	SortByProfit
)

func (s SortMode) String() string {
	if s == SortByProfit {
		return "net profit"
	}
	return "total burden"
}

// Model is the application state
type Model struct {
	width  int
	height int

	inputPath string
	parser    *config.InputParser
	engine    *calculation.CalculationEngine

	input   domain.CalcInput
	summary *domain.CalculationSummary
	visible []domain.Result

	table           table.Model
	revenueInput    textinput.Model
	help            help.Model
	keys            keyMap
	sortBy          SortMode
	showUnavailable bool
	editing         bool

	err     error
	loading bool
}

// NewModel creates a model that loads inputPath on start
func NewModel(inputPath string, engine *calculation.CalculationEngine) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 12000000"
	ti.CharLimit = 16
	ti.Width = 20
	ti.Prompt = "Revenue: "

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		width:        80,
		height:       24,
		inputPath:    inputPath,
		parser:       config.NewInputParserWithRules(engine.Rules),
		engine:       engine,
		table:        t,
		revenueInput: ti,
		help:         help.New(),
		keys:         defaultKeyMap(),
		loading:      true,
	}
}

// Init loads the input file
func (m Model) Init() tea.Cmd {
	return loadInputCmd(m.parser, m.inputPath)
}

func loadInputCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		in, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: in}
	}
}

func calculateCmd(engine *calculation.CalculationEngine, in domain.CalcInput) tea.Cmd {
	return func() tea.Msg {
		summary, err := engine.RunContext(context.Background(), in)
		return CalculationCompleteMsg{Input: in, Summary: summary, Err: err}
	}
}

func columns(width int) []table.Column {
	titleWidth := width - 58
	if titleWidth < 24 {
		titleWidth = 24
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Regime", Width: titleWidth},
		{Title: "Burden", Width: 16},
		{Title: "Burden %", Width: 9},
		{Title: "Net profit", Width: 16},
	}
}

// visibleResults orders the results for display. Unavailable regimes always come last.
func visibleResults(summary *domain.CalculationSummary, sortBy SortMode, showUnavailable bool) []domain.Result {
	if summary == nil {
		return nil
	}
	available := summary.Available()
	sort.SliceStable(available, func(i, j int) bool {
		a, b := available[i], available[j]
		if sortBy == SortByProfit {
			if !a.NetProfit.Equal(b.NetProfit) {
				return a.NetProfit.GreaterThan(b.NetProfit)
			}
			return a.TotalBurden.LessThan(b.TotalBurden)
		}
		if !a.TotalBurden.Equal(b.TotalBurden) {
			return a.TotalBurden.LessThan(b.TotalBurden)
		}
		return a.NetProfit.GreaterThan(b.NetProfit)
	})
	if !showUnavailable {
		return available
	}
	for _, r := range summary.Results {
		if !r.Available {
			available = append(available, r)
		}
	}
	return available
}

// refreshTable rebuilds the rows, keeping the cursor in range
func (m *Model) refreshTable() {
	m.visible = visibleResults(m.summary, m.sortBy, m.showUnavailable)
	rows := make([]table.Row, 0, len(m.visible))
	for i, r := range m.visible {
		if !r.Available {
			rows = append(rows, table.Row{"", r.Title, "n/a", "", ""})
			continue
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.Title,
			FormatCurrency(r.TotalBurden),
			r.BurdenPercent.StringFixed(2) + "%",
			FormatCurrency(r.NetProfit),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// Selected returns the regime under the cursor
func (m Model) Selected() (domain.Result, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return domain.Result{}, false
	}
	return m.visible[i], true
}
