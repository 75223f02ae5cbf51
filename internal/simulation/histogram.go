package simulation

// Histogram tracks how many trials produced each headcount.
type Histogram struct {
	Min    int   `json:"min"`
	Max    int   `json:"max"`
	Counts []int `json:"counts"` // Counts[i] is the number of trials with Min+i attendees
}

// NewHistogram builds a histogram from sorted trial outcomes.
func NewHistogram(sorted []int) *Histogram {
	if len(sorted) == 0 {
		return &Histogram{}
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	counts := make([]int, hi-lo+1)
	for _, v := range sorted {
		counts[v-lo]++
	}

	return &Histogram{Min: lo, Max: hi, Counts: counts}
}

// Buckets groups the histogram into at most n equal-width buckets, returning
// the lower bound and trial count of each.
func (h *Histogram) Buckets(n int) (bounds []int, counts []int) {
	if h == nil || len(h.Counts) == 0 || n <= 0 {
		return nil, nil
	}

	width := (len(h.Counts) + n - 1) / n
	for start := 0; start < len(h.Counts); start += width {
		end := start + width
		if end > len(h.Counts) {
			end = len(h.Counts)
		}
		total := 0
		for _, c := range h.Counts[start:end] {
			total += c
		}
		bounds = append(bounds, h.Min+start)
		counts = append(counts, total)
	}
	return bounds, counts
}
