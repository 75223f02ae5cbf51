package visuals

import (
	"fmt"
	"strings"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/simulation"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// RenderCard formats an estimation result as a bordered terminal card.
func RenderCard(res estimate.EstimationResult, model estimate.ProbabilityModel) string {
	s := estimate.Format(res)

	rows := []string{
		titleStyle.Render("Estimated Attendance"),
		row("Expected", s.Estimate),
		row("Rate", s.Percentage),
		row("Spread", s.StdDev),
		row("No response", s.NoResponse),
		"",
		row("Model", fmt.Sprintf("yes %.2f · maybe %.2f · no %.2f · unknown %.2f", model.PYes, model.PMaybe, model.PNo, model.PUnknown)),
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

// RenderSimulation formats simulation percentiles as a terminal card.
func RenderSimulation(res simulation.Result) string {
	rows := []string{
		titleStyle.Render(fmt.Sprintf("Simulated Attendance (%d trials)", res.Trials)),
		row("P10", fmt.Sprintf("%.0f people", res.Percentiles.P10)),
		row("P50", fmt.Sprintf("%.0f people", res.Percentiles.P50)),
		row("P85", fmt.Sprintf("%.0f people", res.Percentiles.P85)),
		row("P95", fmt.Sprintf("%.0f people", res.Percentiles.P95)),
		row("Mean", fmt.Sprintf("%.1f ±%.1f", res.Mean, res.StdDev)),
	}
	for _, w := range res.Warnings {
		rows = append(rows, errorStyle.Render(w))
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

// RenderError formats a validation message for the terminal.
func RenderError(msg string) string {
	return errorStyle.Render(msg)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
