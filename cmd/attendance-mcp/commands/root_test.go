package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantPrefix bool
		wantText   string
	}{
		{"Validation", &estimate.ValidationError{Message: estimate.MsgTotalNotPositive}, false, estimate.MsgTotalNotPositive},
		{"WrappedValidation", fmt.Errorf("estimate: %w", &estimate.ValidationError{Message: estimate.MsgTotalNotPositive}), false, estimate.MsgTotalNotPositive},
		{"Other", errors.New("disk full"), true, "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)

			out := buf.String()
			assert.Equal(t, 1, strings.Count(out, tt.wantText), "message must be printed once: %q", out)
			assert.Equal(t, tt.wantPrefix, strings.HasPrefix(out, "Error: "))
		})
	}
}

func TestEstimateCmd_InvalidInputLeavesReportingToExecute(t *testing.T) {
	prev := svc
	svc = service.New(nil, service.Options{})
	t.Cleanup(func() { svc = prev })

	var stdout, stderr bytes.Buffer
	estimateCmd.SetOut(&stdout)
	estimateCmd.SetErr(&stderr)
	estimateCmd.SetContext(context.Background())
	t.Cleanup(func() {
		estimateCmd.SetOut(nil)
		estimateCmd.SetErr(nil)
	})
	require.NoError(t, estimateCmd.Flags().Parse([]string{"--total", "0"}))

	err := estimateCmd.RunE(estimateCmd, nil)

	var vErr *estimate.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, estimate.MsgTotalNotPositive, vErr.Message)
	assert.Empty(t, stderr.String())
	assert.Empty(t, stdout.String())
}
