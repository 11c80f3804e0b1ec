package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	if _, ok := registry.Get("test_template"); !ok {
		t.Fatal("Expected to find template")
	}
	if _, ok := registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}
	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"retire_1yr_later",
		"retire_1yr_earlier",
		"spend_10pct_less",
		"contribute_10pct_more",
		"return_minus_1pct",
		"inflation_plus_1pct",
		"tax_on",
		"tax_off",
	}

	for _, name := range expected {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected to find template: %s", name)
			continue
		}
		if len(template.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
		if template.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
	}
}

func TestBuiltInTemplates_ApplyToPinnedScenario(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := PinAssumptions(createTestScenario(), domain.DefaultAssumptions())

	for _, name := range registry.List() {
		template, _ := registry.Get(name)
		if _, err := ApplyTemplate(base, template); err != nil {
			t.Errorf("Template %s failed on pinned scenario: %v", name, err)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, _ := registry.Get("spend_10pct_less")
	base := createTestScenario()

	result, err := ApplyTemplate(base, template)
	if err != nil {
		t.Fatalf("Failed to apply template: %v", err)
	}
	if !result.Periods[1].MonthlySpending.Equal(decimal.NewFromInt(2700)) {
		t.Errorf("Expected spending 2700, got %s", result.Periods[1].MonthlySpending)
	}
	if !result.Periods[2].MonthlySpending.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("Expected spending 1800, got %s", result.Periods[2].MonthlySpending)
	}
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTemplate(base, Template{Name: "empty"})
	if err != nil {
		t.Fatalf("Failed to apply empty template: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got same reference")
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Single template", "tax_on", []string{"tax_on"}},
		{"Multiple templates", "tax_on,spend_10pct_less", []string{"tax_on", "spend_10pct_less"}},
		{"With spaces", " tax_on , spend_10pct_less ", []string{"tax_on", "spend_10pct_less"}},
		{"Empty string", "", nil},
		{"Only spaces", "  ,  ,  ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTemplateList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d templates, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Expected %s at %d, got %s", tt.expected[i], i, result[i])
				}
			}
		})
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Retirement Timing:", "Cash Flow:", "Tax:", "retire_1yr_later", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if got := GetTemplateHelp(NewTemplateRegistry()); got != "No templates registered" {
		t.Errorf("Unexpected help for empty registry: %s", got)
	}
}
