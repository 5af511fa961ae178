package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestVATCharged(t *testing.T) {
	assertMoney(t, "476190.48", VATCharged(dec("10000000"), dec("5")))
	assertMoney(t, "1803278.69", VATCharged(dec("10000000"), dec("22")))
	assert.True(t, VATCharged(dec("10000000"), decimal.Zero).IsZero())
	assert.True(t, VATCharged(dec("10000000"), dec("-5")).IsZero())
}

func TestVATDeductible(t *testing.T) {
	// 70% of 4M carried VAT: 2.8M * 22/122
	assertMoney(t, "504918.03", VATDeductible(dec("4000000"), dec("70"), dec("22")))
	assert.True(t, VATDeductible(decimal.Zero, dec("70"), dec("22")).IsZero())
	assert.True(t, VATDeductible(dec("-1"), dec("70"), dec("22")).IsZero())
	assert.True(t, VATDeductible(dec("4000000"), dec("70"), decimal.Zero).IsZero())
}

func TestVATPayable(t *testing.T) {
	assertMoney(t, "700.00", VATPayable(dec("1000"), dec("200"), dec("100")))
	assert.True(t, VATPayable(dec("100"), dec("200"), dec("300")).IsZero(), "payable never negative")
}

func TestVATChargeBase_RoundTrip(t *testing.T) {
	for _, rate := range []string{"5", "10", "22"} {
		net := dec("123456.78")
		gross := VATChargeBase(net, dec(rate))
		expected := net.Mul(dec(rate)).Div(dec("100"))
		assert.True(t, VATCharged(gross, dec(rate)).Sub(expected).Abs().LessThan(dec("0.000001")),
			"rate %s: charged VAT of grossed-up amount should equal net*r/100", rate)
	}
}

func TestVATBreakdown_ReducedRateHasNoDeductions(t *testing.T) {
	in := scenarioInput()
	in.TransitionMode = domain.TransitionVATCredit
	in.AccumulatedVATCredit = dec("100000")
	cc := scenarioContext(t, in)

	reduced := vatBreakdown(cc, in, dec("5"))
	assert.True(t, reduced.Deductible.IsZero())
	assert.True(t, reduced.ExtraCredit.IsZero())
	assert.True(t, reduced.Payable.Equal(reduced.Charged))

	standard := vatBreakdown(cc, in, dec("22"))
	assertMoney(t, "504918.03", standard.Deductible)
	assertMoney(t, "100000.00", standard.ExtraCredit)
	assertMoney(t, "1198360.66", standard.Payable)
}
