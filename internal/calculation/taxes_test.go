package calculation

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestProgressiveIncomeTax_2026Schedule(t *testing.T) {
	brackets := domain.DefaultTaxRules().OSNO.NDFLBrackets

	tests := []struct {
		name     string
		base     string
		expected string
	}{
		{"zero", "0", "0.00"},
		{"negative", "-100000", "0.00"},
		{"first bracket", "1000000", "130000.00"},
		{"first bracket edge", "2400000", "312000.00"},
		{"second bracket edge", "5000000", "702000.00"},
		{"third bracket", "10000000", "1602000.00"},
		{"third bracket edge", "20000000", "3402000.00"},
		{"fourth bracket edge", "50000000", "9402000.00"},
		{"terminal bracket", "60000000", "11602000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.expected, ProgressiveIncomeTax(dec(tt.base), brackets))
		})
	}
}

func TestProgressiveIncomeTax_NonDecreasing(t *testing.T) {
	brackets := domain.DefaultTaxRules().OSNO.NDFLBrackets

	var bases []decimal.Decimal
	for b := int64(0); b <= 60_000_000; b += 250_000 {
		bases = append(bases, decimal.NewFromInt(b))
	}
	for _, edge := range []int64{2_400_000, 5_000_000, 20_000_000, 50_000_000} {
		bases = append(bases,
			decimal.NewFromInt(edge-1),
			decimal.NewFromInt(edge),
			decimal.NewFromInt(edge+1))
	}
	sort.Slice(bases, func(i, j int) bool { return bases[i].LessThan(bases[j]) })

	prev := ProgressiveIncomeTax(bases[0], brackets)
	for _, b := range bases[1:] {
		tax := ProgressiveIncomeTax(b, brackets)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax(%s)=%s below previous %s", b, tax, prev)
		assert.True(t, tax.LessThanOrEqual(b), "tax(%s)=%s exceeds the base", b, tax)
		prev = tax
	}
}

func TestProgressiveIncomeTax_RemainderAtLastRate(t *testing.T) {
	limit := dec("100")
	brackets := []domain.TaxBracket{{UpTo: &limit, Rate: dec("0.1")}}

	assertMoney(t, "15.00", ProgressiveIncomeTax(dec("150"), brackets))
	assert.True(t, ProgressiveIncomeTax(dec("150"), nil).IsZero())
}

func TestContributionCalculator(t *testing.T) {
	calc := NewContributionCalculator(domain.DefaultTaxRules().Contributions)

	assertMoney(t, "540000.00", calc.StandardInsurance(dec("1800000")))

	assert.True(t, calc.OwnerExtraOnBase(dec("300000")).IsZero(), "threshold itself is exempt")
	assertMoney(t, "0.01", calc.OwnerExtraOnBase(dec("300001")))
	assert.True(t, calc.OwnerExtraOnBase(dec("-50000")).IsZero())

	extra, base := calc.OwnerExtraOnIncome(dec("10000000"))
	assertMoney(t, "97000.00", extra)
	assertMoney(t, "10000000.00", base)

	extra, base = calc.OwnerExtraOnProfit(dec("10000000"), dec("7840000"))
	assertMoney(t, "18600.00", extra)
	assertMoney(t, "2160000.00", base)

	extra, base = calc.OwnerExtraOnProfit(dec("1000000"), dec("2000000"))
	assert.True(t, extra.IsZero(), "loss gives no owner contribution")
	assert.True(t, base.Equal(decimal.NewFromInt(-1000000)))
}
