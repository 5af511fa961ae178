package domain

import "fmt"

// RegimeID identifies one concrete regime variant
type RegimeID string

const (
	RegimeAUSNIncome     RegimeID = "ausn_income"
	RegimeAUSNProfit     RegimeID = "ausn_profit"
	RegimeUSNIncomeNoVAT RegimeID = "usn_income_no_vat"
	RegimeUSNIncomeVAT5  RegimeID = "usn_income_vat_5"
	RegimeUSNIncomeVAT22 RegimeID = "usn_income_vat_22"
	RegimeUSNProfitNoVAT RegimeID = "usn_profit_no_vat"
	RegimeUSNProfitVAT5  RegimeID = "usn_profit_vat_5"
	RegimeUSNProfitVAT22 RegimeID = "usn_profit_vat_22"
	RegimeOSNOCorporate  RegimeID = "osno_ooo"
	RegimeOSNOIndividual RegimeID = "osno_ip"
	RegimePatent         RegimeID = "patent"
)

// RegimeKind groups variants that share one calculation family
type RegimeKind string

const (
	KindAUSN           RegimeKind = "ausn"
	KindUSNIncome      RegimeKind = "usn_income"
	KindUSNProfit      RegimeKind = "usn_profit"
	KindOSNOCorporate  RegimeKind = "osno_corporate"
	KindOSNOIndividual RegimeKind = "osno_individual"
	KindPatent         RegimeKind = "patent"
)

// VATMode is the VAT treatment of a simplified-regime variant
type VATMode int

const (
	VATNone VATMode = iota
	VATReduced
	VATStandard
)

// RegimeInfo is the static description of a regime variant
type RegimeInfo struct {
	ID      RegimeID   `json:"id" yaml:"id"`
	Kind    RegimeKind `json:"kind" yaml:"kind"`
	Title   string     `json:"title" yaml:"title"`
	VATMode VATMode    `json:"-" yaml:"-"`
}

// regimeRegistry is ordered; results are reported in this order.
var regimeRegistry = []RegimeInfo{
	{ID: RegimeAUSNIncome, Kind: KindAUSN, Title: "АУСН 8% (доходы)"},
	{ID: RegimeAUSNProfit, Kind: KindAUSN, Title: "АУСН 20% (доходы минус расходы)"},
	{ID: RegimeUSNIncomeNoVAT, Kind: KindUSNIncome, Title: "УСН 6% без НДС", VATMode: VATNone},
	{ID: RegimeUSNIncomeVAT5, Kind: KindUSNIncome, Title: "УСН 6% + НДС 5%", VATMode: VATReduced},
	{ID: RegimeUSNIncomeVAT22, Kind: KindUSNIncome, Title: "УСН 6% + НДС 22%", VATMode: VATStandard},
	{ID: RegimeUSNProfitNoVAT, Kind: KindUSNProfit, Title: "УСН 15% без НДС", VATMode: VATNone},
	{ID: RegimeUSNProfitVAT5, Kind: KindUSNProfit, Title: "УСН 15% + НДС 5%", VATMode: VATReduced},
	{ID: RegimeUSNProfitVAT22, Kind: KindUSNProfit, Title: "УСН 15% + НДС 22%", VATMode: VATStandard},
	{ID: RegimeOSNOCorporate, Kind: KindOSNOCorporate, Title: "ОСНО (ООО): налог на прибыль 25% + НДС 22%", VATMode: VATStandard},
	{ID: RegimeOSNOIndividual, Kind: KindOSNOIndividual, Title: "ОСНО (ИП): НДФЛ + НДС 22%", VATMode: VATStandard},
	{ID: RegimePatent, Kind: KindPatent, Title: "Патент"},
}

// Regimes returns every registered regime in report order
func Regimes() []RegimeInfo {
	out := make([]RegimeInfo, len(regimeRegistry))
	copy(out, regimeRegistry)
	return out
}

// RegimeIDs returns every registered regime ID in report order
func RegimeIDs() []RegimeID {
	ids := make([]RegimeID, len(regimeRegistry))
	for i, r := range regimeRegistry {
		ids[i] = r.ID
	}
	return ids
}

// LookupRegime returns the registry entry for id
func LookupRegime(id RegimeID) (RegimeInfo, bool) {
	for _, r := range regimeRegistry {
		if r.ID == id {
			return r, true
		}
	}
	return RegimeInfo{}, false
}

// ParseRegimeID validates a regime identifier
func ParseRegimeID(s string) (RegimeID, error) {
	if _, ok := LookupRegime(RegimeID(s)); !ok {
		return "", fmt.Errorf("unknown regime %q", s)
	}
	return RegimeID(s), nil
}

// Title returns the display title of the regime
func (id RegimeID) Title() string {
	if info, ok := LookupRegime(id); ok {
		return info.Title
	}
	return string(id)
}
