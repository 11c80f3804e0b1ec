package scenes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// TableModel lists the yearly snapshots of one scenario. Ages where a
// regime starts are marked with '*'.
type TableModel struct {
	table   table.Model
	summary *domain.ProjectionSummary
}

// NewTableModel creates a new table scene model
func NewTableModel() *TableModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Age", Width: 5},
			{Title: "Balance", Width: 16},
			{Title: "Real Balance", Width: 16},
			{Title: "Contributions", Width: 16},
			{Title: "Growth", Width: 16},
			{Title: "W/D Rate", Width: 9},
			{Title: "Tax Paid", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(styles)
	return &TableModel{table: t}
}

// SetSummary replaces the rows with the snapshots of summary and moves the
// cursor back to the first year.
func (m *TableModel) SetSummary(summary *domain.ProjectionSummary) {
	m.summary = summary
	m.table.SetRows(Rows(summary))
	m.table.GotoTop()
}

// SetSize fits the table to the available height.
func (m *TableModel) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-8, 5))
}

// Rows converts the snapshots of a summary to table rows.
func Rows(summary *domain.ProjectionSummary) []table.Row {
	rows := make([]table.Row, 0, len(summary.Projection))
	for _, y := range summary.Projection {
		age := strconv.Itoa(y.Age)
		if summary.IsRegimeStart(y.Age) {
			age += "*"
		}
		rows = append(rows, table.Row{
			age,
			tuistyles.FormatCurrency(y.Balance),
			tuistyles.FormatCurrency(y.RealBalance),
			tuistyles.FormatCurrency(y.Contributions),
			tuistyles.FormatCurrency(y.Growth),
			output.FormatPercentage(y.WithdrawalRate),
			tuistyles.FormatCurrency(y.TaxPaid),
		})
	}
	return rows
}

// Cursor returns the highlighted row index.
func (m *TableModel) Cursor() int {
	return m.table.Cursor()
}

// Update scrolls the table
func (m *TableModel) Update(msg tea.Msg) (*TableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table scene
func (m *TableModel) View() string {
	if m.summary == nil {
		return renderEmptyState()
	}
	return m.table.View() + "\n" + tuistyles.SubtitleStyle.Render("* regime starts at this age • ↑/↓ scroll")
}
