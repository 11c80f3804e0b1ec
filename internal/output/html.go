package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"currency": FormatCurrency,
	"percent":  FormatPercentage,
}).Parse(reportTemplate))

// HTMLFormatter renders a standalone page with one table and chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

type htmlScenario struct {
	*domain.ProjectionSummary
	Chart lineChart
}

type htmlReport struct {
	PlanName    string
	Assumptions []string
	Scenarios   []htmlScenario
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	data := htmlReport{
		PlanName:    report.PlanName,
		Assumptions: report.Assumptions,
	}
	for i := range report.Scenarios {
		s := &report.Scenarios[i]
		data.Scenarios = append(data.Scenarios, htmlScenario{ProjectionSummary: s, Chart: buildChart(s)})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
