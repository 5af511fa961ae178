package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/breakeven"
	calc "github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// Prints every solver evaluation of the patent break-even search as CSV, followed by the
// uplift each regime ends up with.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <input-file>")
		return
	}
	in, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	engine := calc.NewCalculationEngine()
	fmt.Println("Regime,Phase,Multiplier,NetProfit,Feasible")
	engine.Solver.Trace = func(s breakeven.Step) {
		fmt.Printf("%s,%s,%s,%s,%t\n", s.Label, s.Phase, s.X.StringFixed(6), s.Value.StringFixed(2), s.Feasible)
	}

	summary, err := engine.RunContext(context.Background(), in)
	if err != nil {
		panic(err)
	}
	if summary.PatentTargetProfit == nil {
		r, _ := summary.Result(domain.RegimePatent)
		fmt.Printf("\nPatent unavailable: %s\n", r.Reason)
		return
	}

	fmt.Printf("\nTarget net profit (patent): %s\n", money.FormatRub(*summary.PatentTargetProfit))
	for _, r := range summary.Available() {
		u := r.Uplift
		switch {
		case u == nil:
			fmt.Printf("%-20s no search\n", r.ID)
		case u.Unattainable:
			fmt.Printf("%-20s unreachable\n", r.ID)
		default:
			fmt.Printf("%-20s multiplier=%s uplift=%s%%\n", r.ID, optional(u.Multiplier), optional(u.UpliftPercent))
		}
	}
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(4)
}
