package engine

import (
	"fmt"
	"math/rand"
	"time"

	"attendance-mcp/internal/history"
)

// Scenarios supported by Generate.
const (
	ScenarioSteady = "steady"
	ScenarioFlaky  = "flaky"
	ScenarioDrift  = "drift"
)

type GeneratorConfig struct {
	Scenario string
	Count    int
	Start    time.Time // Date of the first event; events follow weekly
	Seed     int64
}

// rates are the true per-category attendance probabilities of one event.
type rates struct {
	yes, maybe, no, unknown float64
}

func Generate(cfg GeneratorConfig) ([]history.EventOutcome, error) {
	if cfg.Start.IsZero() {
		cfg.Start = time.Now().AddDate(0, 0, -7*cfg.Count)
	}
	switch cfg.Scenario {
	case ScenarioSteady, ScenarioFlaky, ScenarioDrift:
	default:
		return nil, fmt.Errorf("unknown scenario %q (want steady, flaky or drift)", cfg.Scenario)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	outcomes := make([]history.EventOutcome, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		total := 60 + rng.Intn(101)
		yes := int(float64(total) * (0.35 + 0.2*rng.Float64()))
		maybe := int(float64(total) * (0.1 + 0.15*rng.Float64()))
		no := int(float64(total) * (0.05 + 0.1*rng.Float64()))
		unknown := total - yes - maybe - no

		r := rates{yes: 0.8, maybe: 0.4, no: 0.05, unknown: 0.15}
		switch cfg.Scenario {
		case ScenarioFlaky:
			// Rain, clashing events: one in five nights loses a large share of the crowd.
			if rng.Float64() < 0.2 {
				r = rates{yes: 0.45, maybe: 0.15, no: 0.02, unknown: 0.05}
			}
			r.maybe = 0.2 + 0.4*rng.Float64()
		case ScenarioDrift:
			ratio := float64(i) / float64(max(cfg.Count-1, 1))
			r.yes = 0.85 - 0.25*ratio // 0.85 -> 0.60
			r.unknown = 0.2 - 0.1*ratio
		}

		outcomes = append(outcomes, history.EventOutcome{
			Name:            fmt.Sprintf("Synthetic Social #%d", i+1),
			Date:            cfg.Start.AddDate(0, 0, 7*i).Format(history.DateLayout),
			Total:           float64(total),
			Yes:             float64(yes),
			Maybe:           float64(maybe),
			No:              float64(no),
			AttendedYes:     float64(binomial(rng, yes, r.yes)),
			AttendedMaybe:   float64(binomial(rng, maybe, r.maybe)),
			AttendedNo:      float64(binomial(rng, no, r.no)),
			AttendedUnknown: float64(binomial(rng, unknown, r.unknown)),
		})
	}
	return outcomes, nil
}

func binomial(rng *rand.Rand, n int, p float64) int {
	k := 0
	for j := 0; j < n; j++ {
		if rng.Float64() < p {
			k++
		}
	}
	return k
}
