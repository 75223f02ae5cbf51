package commands

import (
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/service"

	"github.com/spf13/cobra"
)

// countFlags are the RSVP inputs shared by estimate and simulate.
type countFlags struct {
	counts     estimate.ResponseCounts
	probs      estimate.ProbabilityModel
	useHistory bool
	asJSON     bool
}

func (f *countFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64VarP(&f.counts.Total, "total", "t", 0, "total number of people invited")
	fl.Float64VarP(&f.counts.Yes, "yes", "y", 0, "number of yes responses")
	fl.Float64VarP(&f.counts.Maybe, "maybe", "m", 0, "number of maybe responses")
	fl.Float64VarP(&f.counts.No, "no", "n", 0, "number of no responses")
	f.registerProbabilities(cmd)
	fl.BoolVar(&f.useHistory, "use-history", false, "derive probabilities from recorded events")
	fl.BoolVar(&f.asJSON, "json", false, "print JSON instead of a summary card")
	_ = cmd.MarkFlagRequired("total")
}

func (f *countFlags) registerProbabilities(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.probs.PYes, "p-yes", estimate.DefaultPYes, "attendance probability of yes responses")
	fl.Float64Var(&f.probs.PMaybe, "p-maybe", estimate.DefaultPMaybe, "attendance probability of maybe responses")
	fl.Float64Var(&f.probs.PNo, "p-no", estimate.DefaultPNo, "attendance probability of no responses")
	fl.Float64Var(&f.probs.PUnknown, "p-unknown", estimate.DefaultPUnknown, "attendance probability of people who did not respond")
}

// overrides returns only the probabilities set on the command line, so that
// history and configured defaults still apply to the others.
func (f *countFlags) overrides(cmd *cobra.Command) estimate.Overrides {
	var o estimate.Overrides
	pick := func(name string, v float64) *float64 {
		if cmd.Flags().Changed(name) {
			return estimate.Float(v)
		}
		return nil
	}
	o.PYes = pick("p-yes", f.probs.PYes)
	o.PMaybe = pick("p-maybe", f.probs.PMaybe)
	o.PNo = pick("p-no", f.probs.PNo)
	o.PUnknown = pick("p-unknown", f.probs.PUnknown)
	return o
}

func (f *countFlags) request(cmd *cobra.Command) service.EstimateRequest {
	return service.EstimateRequest{
		Counts:     f.counts,
		Overrides:  f.overrides(cmd),
		UseHistory: f.useHistory,
	}
}
