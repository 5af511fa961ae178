package calculation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2), msgAndArgs...)
}

// scenarioInput is the reference business: 10M revenue, 40% cost of goods, 500k rent,
// three employees on 50k, other expenses 10% of revenue, 70% of purchases with VAT.
func scenarioInput() domain.CalcInput {
	return domain.CalcInput{
		Revenue:              dec("10000000"),
		CostPercent:          dec("40"),
		VATPurchasesPercent:  dec("70"),
		Rent:                 dec("500000"),
		FixedContribution:    dec("57390"),
		Employees:            3,
		MonthlySalary:        dec("50000"),
		PayrollMode:          domain.PayrollStaff,
		OtherExpensesMode:    domain.OtherExpensesPercent,
		OtherExpensesPercent: dec("10"),
		TransitionMode:       domain.TransitionNone,
		PurchaseMonthWeights: domain.UniformPurchaseWeights(),
		PatentCostYear:       dec("100000"),
	}
}

func scenarioContext(t *testing.T, in domain.CalcInput) domain.CalculationContext {
	t.Helper()
	cc, _ := BuildContext(in, domain.DefaultTaxRules())
	return cc
}

func assertBurdenIdentity(t *testing.T, r domain.Result) {
	t.Helper()
	assert.True(t, r.TotalBurden.Equal(r.Tax.Add(r.VAT).Add(r.Insurance)),
		"%s: burden %s != tax %s + vat %s + insurance %s", r.ID, r.TotalBurden, r.Tax, r.VAT, r.Insurance)
	if r.Revenue.IsPositive() {
		expected := r.TotalBurden.Div(r.Revenue).Mul(decimal.NewFromInt(100))
		assert.True(t, r.BurdenPercent.Equal(expected), "%s: burden percent", r.ID)
	} else {
		assert.True(t, r.BurdenPercent.IsZero(), "%s: burden percent must be zero without revenue", r.ID)
	}
}

// recordingLogger keeps formatted lines prefixed with their level
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) record(level, template string, args []any) {
	l.messages = append(l.messages, level+": "+fmt.Sprintf(template, args...))
}

func (l *recordingLogger) Debugf(template string, args ...any) { l.record("DEBUG", template, args) }
func (l *recordingLogger) Warnf(template string, args ...any)  { l.record("WARN", template, args) }
func (l *recordingLogger) Errorf(template string, args ...any) { l.record("ERROR", template, args) }
