package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; empty picks the first
	Templates        []string // Template names or transform specs ("name:key=value")
}

// Compare runs the base scenario and one variation per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseScenario, err := findScenario(cfg, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}

	baseSummary, err := ce.run(ctx, cfg, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	// Assumption transforms operate on explicit overrides.
	pinned := transform.PinAssumptions(baseScenario, cfg.GlobalAssumptions)

	alternatives := []ComparisonResult{}
	for _, name := range options.Templates {
		template, err := ce.lookup(name)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTemplate(pinned, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		modified.Name = baseScenario.Name + "_" + template.Name
		modified.Description = template.Description

		altSummary, err := ce.run(ctx, cfg, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altSummary)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios of the plan (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	cfg *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseScenario, err := findScenario(cfg, baseScenarioName)
	if err != nil {
		return nil, err
	}

	baseSummary, err := ce.run(ctx, cfg, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		scenario := cfg.FindScenario(altName)
		if scenario == nil {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altSummary, err := ce.run(ctx, cfg, scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altSummary)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// lookup resolves a built-in template, or builds a one-off template from a
// transform spec such as "scale_spending:factor=0.8".
func (ce *CompareEngine) lookup(name string) (transform.Template, error) {
	if template, ok := ce.TemplateRegistry.Get(name); ok {
		return template, nil
	}
	if !strings.Contains(name, ":") {
		return transform.Template{}, fmt.Errorf("template %s not found", name)
	}

	t, err := ce.TransformRegistry.ParseTransformSpec(name)
	if err != nil {
		return transform.Template{}, err
	}
	return transform.Template{
		Name:        strings.NewReplacer(":", "_", "=", "_", ",", "_").Replace(name),
		Description: t.Description(),
		Transforms:  []transform.ScenarioTransform{t},
	}, nil
}

func (ce *CompareEngine) run(ctx context.Context, cfg *domain.Configuration, scenario *domain.Scenario) (*domain.ProjectionSummary, error) {
	in, err := config.ResolveScenario(cfg.GlobalAssumptions, scenario)
	if err != nil {
		return nil, err
	}
	return ce.CalcEngine.RunScenario(ctx, in)
}

func findScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		if len(cfg.Scenarios) == 0 {
			return nil, fmt.Errorf("configuration has no scenarios")
		}
		return &cfg.Scenarios[0], nil
	}
	scenario := cfg.FindScenario(name)
	if scenario == nil {
		return nil, fmt.Errorf("base scenario %s not found in configuration", name)
	}
	return scenario, nil
}
