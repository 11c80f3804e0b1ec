package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// Formatter renders a projection report in one output format.
type Formatter interface {
	Name() string
	Format(report *domain.ProjectionReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.ProjectionReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.ProjectionReport) ([]byte, error) {
	return f.F(report)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"table": "console",
	"text":  "console",
}

// GetFormatterByName returns the formatter registered under name or alias,
// nil when there is none.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report into a timestamped file in the working
// directory and returns its name.
func WriteFormatted(f Formatter, report *domain.ProjectionReport, ext string) (string, error) {
	filename := fmt.Sprintf("projection_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := WriteToFile(f, report, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteToFile renders the report into the named file.
func WriteToFile(f Formatter, report *domain.ProjectionReport, filename string) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
