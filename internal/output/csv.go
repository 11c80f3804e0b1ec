package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// CSVFormatter writes one row per scenario per year, in report order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Age", "RegimeStart", "Balance", "RealBalance", "Contributions", "Growth", "WithdrawalRate", "TaxPaid"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range report.Scenarios {
		s := &report.Scenarios[i]
		for _, y := range s.Projection {
			start := ""
			if s.IsRegimeStart(y.Age) {
				start = "*"
			}
			row := []string{
				s.Name,
				strconv.Itoa(y.Age),
				start,
				fixed(y.Balance),
				fixed(y.RealBalance),
				fixed(y.Contributions),
				fixed(y.Growth),
				fixed(y.WithdrawalRate),
				fixed(y.TaxPaid),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
