package output

import (
	"encoding/json"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// JSONFormatter emits the whole report, snapshots included.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
