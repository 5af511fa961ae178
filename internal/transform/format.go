package transform

import (
	"fmt"
	"strings"

	"github.com/taxregimes/taxregimes/pkg/money"
)

// FormatOutcome renders a what-if outcome as a console table
func FormatOutcome(o *Outcome) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString("Applied:\n")
	for _, a := range o.Applied {
		sb.WriteString("  • " + a + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-40s %14s %14s %14s\n", "Regime", "Net Before", "Net After", "Change"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")
	for _, d := range o.Deltas {
		title := []rune(d.Title)
		if len(title) > 40 {
			title = append(title[:37], []rune("...")...)
		}
		before, after, change := "n/a", "n/a", ""
		if d.AvailableBefore {
			before = money.Compact(d.NetBefore)
		}
		if d.AvailableAfter {
			after = money.Compact(d.NetAfter)
		}
		if d.AvailableBefore && d.AvailableAfter {
			change = money.Compact(d.NetChange)
			if d.NetChange.IsPositive() {
				change = "+" + change
			}
		}
		sb.WriteString(fmt.Sprintf("%-40s %14s %14s %14s\n", string(title), before, after, change))
	}
	sb.WriteString("\n")

	if o.BestChanged() {
		sb.WriteString(fmt.Sprintf("Lowest burden moves from %s to %s\n", o.BestBefore.Title(), o.BestAfter.Title()))
	} else if o.BestAfter != "" {
		sb.WriteString(fmt.Sprintf("Lowest burden stays with %s\n", o.BestAfter.Title()))
	}
	return sb.String()
}
