package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fyerfyer/illogical/pkg/circuit"
)

// Value styles. X gets its own muted style because an undefined value is
// neither lit nor unlit.
var (
	styleOne   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))
	styleZero  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16858E"))
	styleX     = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#F4D03F"))
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
)

// RenderValue returns the styled text for a logic value
func RenderValue(v circuit.LogicValue) string {
	switch v {
	case circuit.One:
		return styleOne.Render(v.String())
	case circuit.Zero:
		return styleZero.Render(v.String())
	default:
		return styleX.Render(v.String())
	}
}

// NamedValue pairs a display name with a value for reporting
type NamedValue struct {
	Name  string
	Kind  circuit.GateKind
	Value circuit.LogicValue
}

// WriteValues writes one line per value under a title
func WriteValues(w io.Writer, title string, values []NamedValue) error {
	var builder strings.Builder

	builder.WriteString(styleTitle.Render(title))
	builder.WriteString("\n")

	if len(values) == 0 {
		builder.WriteString(styleMuted.Render("  (no changes)"))
		builder.WriteString("\n")
	}

	for _, v := range values {
		builder.WriteString(fmt.Sprintf("  %-12s %-8s %s\n", v.Name, v.Kind, RenderValue(v.Value)))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// WriteTruthTable renders a truth table with one column per input and output
func WriteTruthTable(w io.Writer, title string, inputs, outputs []string, rows [][]bool, results [][]circuit.LogicValue) error {
	if len(rows) != len(results) {
		return fmt.Errorf("truth table has %d input rows but %d result rows", len(rows), len(results))
	}

	headers := make([]string, 0, len(inputs)+len(outputs))
	headers = append(headers, inputs...)
	headers = append(headers, outputs...)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleMuted).
		Headers(headers...)

	for i, row := range rows {
		cells := make([]string, 0, len(headers))
		for _, bit := range row {
			cells = append(cells, RenderValue(circuit.FromBool(bit)))
		}
		for _, v := range results[i] {
			cells = append(cells, RenderValue(v))
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", styleTitle.Render(title), t.String())
	return err
}
