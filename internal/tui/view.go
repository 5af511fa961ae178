package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taxregimes/taxregimes/internal/output"
	"github.com/taxregimes/taxregimes/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{m.renderTitleBar()}

	switch {
	case m.summary == nil && m.err != nil:
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	case m.summary == nil:
		sections = append(sections, BorderStyle.Render("Calculating..."))
	default:
		sections = append(sections,
			m.renderCards(),
			BorderStyle.Render(m.table.View()),
			m.renderDetails(),
		)
		if m.editing {
			sections = append(sections, PromptStyle.Render(m.revenueInput.View()))
		}
		if m.err != nil {
			sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
		}
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Tax Regime Comparison")
	sub := fmt.Sprintf("%s | sorted by %s", m.inputPath, m.sortBy)
	if m.showUnavailable {
		sub += " | showing unavailable"
	}
	if m.loading && m.summary != nil {
		sub += " | recalculating..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(sub))
}

func (m Model) renderCards() string {
	cards := []*components.MetricCard{
		components.NewAmountCard("Revenue", m.input.Revenue).WithWidth(24),
	}
	if best, ok := m.summary.Best(); ok {
		cards = append(cards, components.NewAmountCard("Lowest burden", best.TotalBurden).
			WithDescription(truncate(best.Title, 28)).WithWidth(32))
	}
	if m.summary.PatentTargetProfit != nil {
		cards = append(cards, components.NewAmountCard("Patent net profit", *m.summary.PatentTargetProfit).WithWidth(24))
	}
	if m.input.CurrentRegime != "" {
		if current, ok := m.summary.Result(m.input.CurrentRegime); ok && current.Available {
			card := components.NewAmountCard("Current regime net", current.NetProfit).WithWidth(28)
			if best, ok := m.summary.Best(); ok {
				card.WithDelta(best.NetProfit.Sub(current.NetProfit), true).WithDescription("vs lowest burden")
			}
			cards = append(cards, card)
		}
	}
	columns := 4
	if m.width < 110 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}

func (m Model) renderDetails() string {
	r, ok := m.Selected()
	if !ok {
		return ""
	}
	if !r.Available {
		return BorderStyle.Render(r.Title + "\n" + UnavailableStyle.Render(r.Reason))
	}

	var sb strings.Builder
	sb.WriteString(r.Title + "\n")
	lines := []output.DetailLine{
		{Label: "Tax", Value: FormatCurrency(r.Tax)},
		{Label: "VAT", Value: FormatCurrency(r.VAT)},
		{Label: "Contributions", Value: FormatCurrency(r.Insurance)},
	}
	lines = append(lines, output.DetailLines(r.Details)...)
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%s %s\n", MetricLabelStyle.Render(fmt.Sprintf("%-34s", l.Label)), l.Value))
	}
	if r.Uplift != nil {
		switch {
		case r.Uplift.Unattainable:
			sb.WriteString(UnavailableStyle.Render("Patent profit unreachable by raising prices") + "\n")
		case r.Uplift.UpliftPercent != nil:
			sb.WriteString(fmt.Sprintf("%s %s%%\n",
				MetricLabelStyle.Render(fmt.Sprintf("%-34s", "Price uplift to match patent")),
				r.Uplift.UpliftPercent.StringFixed(2)))
		}
	}
	return BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
