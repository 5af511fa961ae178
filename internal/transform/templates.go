package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common small-business changes
func CreateBuiltInTemplates(rules domain.TaxRules) *TemplateRegistry {
	registry := NewTemplateRegistry()
	pct := decimal.NewFromInt

	registry.Register(Template{
		Name:        "grow_20",
		Description: "Sell 20% more at today's prices",
		Transforms:  []InputTransform{&ScaleVolume{Percent: pct(20)}},
	})
	registry.Register(Template{
		Name:        "shrink_20",
		Description: "Sell 20% less at today's prices",
		Transforms:  []InputTransform{&ScaleVolume{Percent: pct(-20)}},
	})
	registry.Register(Template{
		Name:        "price_up_10",
		Description: "Raise prices by 10% with costs unchanged",
		Transforms:  []InputTransform{&RaisePrices{Percent: pct(10), Rules: rules}},
	})
	registry.Register(Template{
		Name:        "hire_2",
		Description: "Hire two more employees at the current salary",
		Transforms:  []InputTransform{&HireEmployees{Count: 2}},
	})
	registry.Register(Template{
		Name:        "cheaper_supplier",
		Description: "Cut cost of goods by 5 percentage points",
		Transforms:  []InputTransform{&AdjustCostPercent{Points: pct(-5)}},
	})
	registry.Register(Template{
		Name:        "expand",
		Description: "Grow sales by 30%, hire three employees and double the rent",
		Transforms: []InputTransform{
			&ScaleVolume{Percent: pct(30)},
			&HireEmployees{Count: 3},
			&scaleRent{factor: pct(2)},
		},
	})

	return registry
}

// scaleRent multiplies the current rent; only used by templates, where the base rent is not
// known up front
type scaleRent struct {
	factor decimal.Decimal
}

func (t *scaleRent) Name() string { return "scale_rent" }

func (t *scaleRent) Description() string {
	return "Multiply rent by " + t.factor.String()
}

func (t *scaleRent) Validate(base domain.CalcInput) error {
	if t.factor.IsNegative() {
		return NewTransformError(t.Name(), "validate", "factor cannot be negative", nil)
	}
	return nil
}

func (t *scaleRent) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.Rent = base.Rent.Mul(t.factor)
	return base, nil
}
