package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

// Template categories, in help order.
const (
	CategoryTiming      = "Retirement Timing"
	CategoryCashFlow    = "Cash Flow"
	CategoryAssumptions = "Market Assumptions"
	CategoryTax         = "Tax"
)

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

// CreateBuiltInTemplates creates a template registry with the common what-if variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "retire_1yr_later",
		Description: "Start drawdown one year later",
		Category:    CategoryTiming,
		Transforms:  []ScenarioTransform{&ShiftRetirement{Years: 1}},
	})
	registry.Register(Template{
		Name:        "retire_1yr_earlier",
		Description: "Start drawdown one year earlier",
		Category:    CategoryTiming,
		Transforms:  []ScenarioTransform{&ShiftRetirement{Years: -1}},
	})
	registry.Register(Template{
		Name:        "retire_3yr_later",
		Description: "Start drawdown three years later",
		Category:    CategoryTiming,
		Transforms:  []ScenarioTransform{&ShiftRetirement{Years: 3}},
	})

	registry.Register(Template{
		Name:        "spend_10pct_less",
		Description: "Cut monthly spending by 10%",
		Category:    CategoryCashFlow,
		Transforms:  []ScenarioTransform{&ScaleSpending{Factor: decimal.NewFromFloat(0.9)}},
	})
	registry.Register(Template{
		Name:        "spend_10pct_more",
		Description: "Raise monthly spending by 10%",
		Category:    CategoryCashFlow,
		Transforms:  []ScenarioTransform{&ScaleSpending{Factor: decimal.NewFromFloat(1.1)}},
	})
	registry.Register(Template{
		Name:        "contribute_10pct_more",
		Description: "Raise monthly contributions by 10%",
		Category:    CategoryCashFlow,
		Transforms:  []ScenarioTransform{&ScaleContribution{Factor: decimal.NewFromFloat(1.1)}},
	})

	registry.Register(Template{
		Name:        "return_minus_1pct",
		Description: "Annual return one point lower",
		Category:    CategoryAssumptions,
		Transforms:  []ScenarioTransform{&AdjustReturn{Delta: decimal.NewFromInt(-1)}},
	})
	registry.Register(Template{
		Name:        "return_plus_1pct",
		Description: "Annual return one point higher",
		Category:    CategoryAssumptions,
		Transforms:  []ScenarioTransform{&AdjustReturn{Delta: decimal.NewFromInt(1)}},
	})
	registry.Register(Template{
		Name:        "inflation_plus_1pct",
		Description: "Inflation one point higher",
		Category:    CategoryAssumptions,
		Transforms:  []ScenarioTransform{&AdjustInflation{Delta: decimal.NewFromInt(1)}},
	})

	registry.Register(Template{
		Name:        "tax_on",
		Description: "Charge the yearly presumptive tax",
		Category:    CategoryTax,
		Transforms:  []ScenarioTransform{&SetTax{Enabled: true}},
	})
	registry.Register(Template{
		Name:        "tax_off",
		Description: "No presumptive tax",
		Category:    CategoryTax,
		Transforms:  []ScenarioTransform{&SetTax{Enabled: false}},
	})

	registry.Register(Template{
		Name:        "stress",
		Description: "Retire a year earlier with one point less return and one point more inflation",
		Category:    CategoryAssumptions,
		Transforms: []ScenarioTransform{
			&ShiftRetirement{Years: -1},
			&AdjustReturn{Delta: decimal.NewFromInt(-1)},
			&AdjustInflation{Delta: decimal.NewFromInt(1)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	for _, category := range []string{CategoryTiming, CategoryCashFlow, CategoryAssumptions, CategoryTax, ""} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		label := category
		if label == "" {
			label = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", label))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fireplan compare plan.yaml --with retire_1yr_later,spend_10pct_less\n")
	sb.WriteString("  fireplan compare plan.yaml --with scale_spending:factor=0.85\n")

	return sb.String()
}
