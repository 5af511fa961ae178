package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		if h := msg.Height - 16; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case InputLoadedMsg:
		m.input = msg.Input
		m.loading = true
		return m, calculateCmd(m.engine, m.input)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.input = msg.Input
		m.summary = msg.Summary
		m.refreshTable()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input outside revenue editing
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		if m.sortBy == SortByBurden {
			m.sortBy = SortByProfit
		} else {
			m.sortBy = SortByBurden
		}
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Unavailable):
		m.showUnavailable = !m.showUnavailable
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.summary == nil {
			return m, nil
		}
		m.editing = true
		m.err = nil
		m.revenueInput.SetValue(m.input.Revenue.StringFixed(0))
		m.revenueInput.CursorEnd()
		return m, tea.Batch(m.revenueInput.Focus(), textinput.Blink)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateEditing handles the revenue input
func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		revenue, err := parseRevenue(m.revenueInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.editing = false
		m.revenueInput.Blur()
		m.loading = true
		return m, calculateCmd(m.engine, m.input.WithRevenue(revenue))

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.err = nil
		m.revenueInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.revenueInput, cmd = m.revenueInput.Update(msg)
	return m, cmd
}

// parseRevenue accepts digits with optional spaces as thousands separators
func parseRevenue(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid revenue %q", s)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("revenue must be greater than zero")
	}
	return v, nil
}
