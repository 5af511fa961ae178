package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// TransformRegistry creates transforms from string parameters, as given on the command line
type TransformRegistry struct {
	factories map[string]TransformFactory
	rules     domain.TaxRules
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a registry with every built-in transform. rules is used by
// transforms that rebuild the calculation context.
func NewTransformRegistry(rules domain.TaxRules) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		rules:     rules,
	}

	registry.Register("scale_volume", createScaleVolume)
	registry.Register("raise_prices", registry.createRaisePrices)
	registry.Register("hire", createHireEmployees)
	registry.Register("set_salary", createSetSalary)
	registry.Register("adjust_cost", createAdjustCostPercent)
	registry.Register("set_rent", createSetRent)
	registry.Register("set_transition", createSetTransition)
	registry.Register("set_patent_cost", createSetPatentCost)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "raise_prices:percent=10"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createScaleVolume(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("scale_volume", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleVolume{Percent: pct}, nil
}

func (r *TransformRegistry) createRaisePrices(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("raise_prices", params, "percent")
	if err != nil {
		return nil, err
	}
	return &RaisePrices{Percent: pct, Rules: r.rules}, nil
}

func createHireEmployees(params map[string]string) (InputTransform, error) {
	raw, ok := params["count"]
	if !ok {
		return nil, fmt.Errorf("hire requires 'count' parameter")
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &HireEmployees{Count: count}, nil
}

func createSetSalary(params map[string]string) (InputTransform, error) {
	monthly, err := decimalParam("set_salary", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetSalary{Monthly: monthly}, nil
}

func createAdjustCostPercent(params map[string]string) (InputTransform, error) {
	points, err := decimalParam("adjust_cost", params, "points")
	if err != nil {
		return nil, err
	}
	return &AdjustCostPercent{Points: points}, nil
}

func createSetRent(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_rent", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetRent{Amount: amount}, nil
}

func createSetTransition(params map[string]string) (InputTransform, error) {
	mode, err := config.ParseTransitionMode(params["mode"])
	if err != nil {
		return nil, err
	}
	t := &SetTransition{Mode: mode}
	if mode != domain.TransitionNone {
		if t.Amount, err = decimalParam("set_transition", params, "amount"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func createSetPatentCost(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_patent_cost", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPatentCost{Amount: amount}, nil
}
