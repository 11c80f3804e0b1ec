package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_retirement", createShiftRetirement)
	registry.Register("scale_spending", createScaleSpending)
	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("set_tax", createSetTax)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
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
// Example: "shift_retirement:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
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

// Factory functions for each transform

func createShiftRetirement(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("shift_retirement requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &ShiftRetirement{Years: years}, nil
}

func createScaleSpending(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_spending", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleSpending{Factor: factor}, nil
}

func createScaleContribution(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_contribution", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createAdjustReturn(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_return", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Delta: delta}, nil
}

func createAdjustInflation(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_inflation", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{Delta: delta}, nil
}

func createSetTax(params map[string]string) (ScenarioTransform, error) {
	enabledStr, ok := params["enabled"]
	if !ok {
		return nil, fmt.Errorf("set_tax requires 'enabled' parameter")
	}
	enabled, err := strconv.ParseBool(enabledStr)
	if err != nil {
		return nil, fmt.Errorf("invalid enabled value: %w", err)
	}

	st := &SetTax{Enabled: enabled}
	if rateStr, ok := params["rate"]; ok {
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid rate value: %w", err)
		}
		st.Rate = &rate
	}
	return st, nil
}

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}
