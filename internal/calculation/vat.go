package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// VATCharged extracts the VAT contained in a VAT-inclusive amount: amount*r/(100+r).
// Returns zero for non-positive rates.
func VATCharged(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(rate).Div(hundred.Add(rate))
}

// VATDeductible returns the input VAT recoverable on purchases, where sharePercent of the
// purchase base carried VAT.
func VATDeductible(base, sharePercent, rate decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	return VATCharged(base.Mul(sharePercent).Div(hundred), rate)
}

// VATPayable nets charged VAT against deductions and carry-over credit, floored at zero
func VATPayable(charged, deductible, extraCredit decimal.Decimal) decimal.Decimal {
	return decimal.Max(charged.Sub(deductible).Sub(extraCredit), decimal.Zero)
}

// VATChargeBase grosses a VAT-exclusive amount up to its VAT-inclusive value
func VATChargeBase(net, rate decimal.Decimal) decimal.Decimal {
	return net.Mul(hundred.Add(rate)).Div(hundred)
}

// vatBreakdown computes VAT for a variant. Input deductions and the carry-over credit apply
// only at the standard rate.
func vatBreakdown(cc domain.CalculationContext, in domain.CalcInput, rate decimal.Decimal) domain.VATBreakdown {
	charged := VATCharged(in.Revenue, rate)
	deductible := decimal.Zero
	credit := decimal.Zero
	if rate.Equal(cc.Rules.VAT.StandardRate) {
		deductible = VATDeductible(cc.CostOfGoods, in.VATPurchasesPercent, rate)
		credit = cc.VATCredit
	}
	return domain.VATBreakdown{
		Rate:        rate,
		Charged:     charged,
		Deductible:  deductible,
		ExtraCredit: credit,
		Payable:     VATPayable(charged, deductible, credit),
	}
}
