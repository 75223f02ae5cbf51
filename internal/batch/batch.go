// Package batch estimates attendance for many events read from CSV.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"attendance-mcp/internal/estimate"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Columns is the expected CSV header.
var Columns = []string{"name", "total", "yes", "maybe", "no"}

// Row is one event to estimate.
type Row struct {
	Line   int                     `json:"line"`
	Name   string                  `json:"name"`
	Counts estimate.ResponseCounts `json:"counts"`
}

// RowResult is the estimate for one row, or the reason it was rejected.
type RowResult struct {
	Row     Row                        `json:"row"`
	Result  *estimate.EstimationResult `json:"result,omitempty"`
	Summary *estimate.Summary          `json:"summary,omitempty"`
	Error   string                     `json:"error,omitempty"`
}

// ReadCSV parses rows from r. The header must contain the Columns, in any order.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int)
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q in header", c)
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := Row{Line: line, Name: record[index["name"]]}
		fields := []struct {
			col string
			dst *float64
		}{
			{"total", &row.Counts.Total},
			{"yes", &row.Counts.Yes},
			{"maybe", &row.Counts.Maybe},
			{"no", &row.Counts.No},
		}
		for _, f := range fields {
			raw := strings.TrimSpace(record[index[f.col]])
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s %q", line, f.col, raw)
			}
			*f.dst = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Estimate runs the estimator over rows with at most workers goroutines.
// Results keep the input order. Invalid rows carry their validation message.
func Estimate(ctx context.Context, rows []Row, model estimate.ProbabilityModel, workers int) ([]RowResult, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]RowResult, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = estimateRow(row, model)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	invalid := 0
	for _, r := range results {
		if r.Error != "" {
			invalid++
		}
	}
	log.Debug().Int("rows", len(rows)).Int("invalid", invalid).Msg("Batch estimation finished")
	return results, nil
}

func estimateRow(row Row, model estimate.ProbabilityModel) RowResult {
	if v := estimate.ValidateCounts(row.Counts); !v.Valid {
		return RowResult{Row: row, Error: v.Message}
	}
	res := estimate.Estimate(row.Counts, model)
	summary := estimate.Format(res)
	return RowResult{Row: row, Result: &res, Summary: &summary}
}

// WriteCSV writes results with the formatted estimate columns appended.
func WriteCSV(w io.Writer, results []RowResult) error {
	writer := csv.NewWriter(w)
	header := append(append([]string{}, Columns...), "expected", "rate", "std_dev", "unknown", "error")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		rec := []string{
			r.Row.Name,
			formatFloat(r.Row.Counts.Total),
			formatFloat(r.Row.Counts.Yes),
			formatFloat(r.Row.Counts.Maybe),
			formatFloat(r.Row.Counts.No),
		}
		if r.Result != nil {
			rec = append(rec,
				strconv.FormatFloat(r.Result.ExpectedAttendance, 'f', 1, 64),
				strconv.FormatFloat(r.Result.AttendanceRate*100, 'f', 1, 64),
				strconv.FormatFloat(r.Result.StandardDeviation, 'f', 1, 64),
				formatFloat(r.Result.UnknownCount),
				"",
			)
		} else {
			rec = append(rec, "", "", "", "", r.Error)
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
