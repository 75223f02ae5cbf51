package visuals

import (
	"fmt"
	"math"
	"strings"

	"attendance-mcp/internal/calibration"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/simulation"
)

// GenerateContributionChart creates a Mermaid pie chart of the expected
// attendees contributed by each RSVP category.
func GenerateContributionChart(counts estimate.ResponseCounts, model estimate.ProbabilityModel) string {
	contrib := estimate.Contributions(counts, model)

	total := 0.0
	for _, v := range contrib {
		total += v
	}
	if total <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie showData\n")
	sb.WriteString("    title \"Expected Attendance by RSVP\"\n")
	for _, name := range estimate.Categories {
		if contrib[name] <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %.1f\n", strings.ToUpper(name[:1])+name[1:], contrib[name]))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateSimulationChart creates a Mermaid bar chart of simulated headcounts.
func GenerateSimulationChart(res simulation.Result) string {
	bounds, counts := res.Histogram.Buckets(20)
	if len(bounds) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for i, b := range bounds {
		labels = append(labels, fmt.Sprintf("\"%d\"", b))
		values = append(values, fmt.Sprintf("%d", counts[i]))
		if counts[i] > maxVal {
			maxVal = counts[i]
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Simulated Attendance (%d trials)\"\n", res.Trials))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Trials\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCalibrationChart creates a Mermaid line chart of predicted versus
// actual attendance across backtest checkpoints.
func GenerateCalibrationChart(res calibration.Result) string {
	if len(res.Checkpoints) == 0 {
		return ""
	}

	var labels, predicted, actual []string
	maxY := 0.0

	// Mermaid's layout starts overlapping labels at around 60 points.
	subsampleRate := 1
	if len(res.Checkpoints) > 60 {
		subsampleRate = int(math.Ceil(float64(len(res.Checkpoints)) / 60.0))
	}

	for i, cp := range res.Checkpoints {
		if i%subsampleRate != 0 && i != len(res.Checkpoints)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("\"%s\"", cp.Date))
		predicted = append(predicted, fmt.Sprintf("%.1f", cp.Predicted))
		actual = append(actual, fmt.Sprintf("%.1f", cp.Actual))
		maxY = math.Max(maxY, math.Max(cp.Predicted, cp.Actual))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Predicted vs Actual Attendance\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"People\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(predicted, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(actual, ", ")))
	sb.WriteString("```")
	return sb.String()
}
