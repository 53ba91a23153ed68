package period

import "time"

// binCutoff is the fixed historical cutoff: everything before it lands
// in a single "ancient history" bucket with the lowest score.
var binCutoff = time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC)

// sentinelStart is the lower edge of the ancient-history bucket, placed
// before any real order data.
var sentinelStart = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// longTimelineScores is the weighting applied once more than 9 half-year
// buckets exist, oldest to newest. Older half-years are grouped in pairs
// so the score saturates at 10 for the most recent half-year.
var longTimelineScores = []int{2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 9, 10}

// RecencyBins is a lookup table mapping a purchase date to an integer
// recency score. Edges are strictly increasing and define half-open
// intervals [Edges[i], Edges[i+1]) labeled Labels[i].
type RecencyBins struct {
	Edges  []time.Time
	Labels []int
}

// NewRecencyBins builds the bin table for a reference date, using the
// fixed 2017-07-01 cutoff.
func NewRecencyBins(reference time.Time) RecencyBins {
	return buildBins(binCutoff, reference)
}

// buildBins is the pure construction over (cutoff, reference), kept
// separate so the padding and truncation behavior can be tested with
// arbitrary cutoffs.
func buildBins(cutoff, reference time.Time) RecencyBins {
	currentStart := HalfYearStart(reference)

	var starts []time.Time
	for cur := cutoff; !cur.After(currentStart); cur = cur.AddDate(0, 6, 0) {
		starts = append(starts, cur)
	}

	edges := make([]time.Time, 0, len(starts)+2)
	edges = append(edges, sentinelStart)
	edges = append(edges, starts...)
	edges = append(edges, reference.AddDate(0, 0, 1))

	var scores []int
	if n := len(starts); n <= 9 {
		// Short timeline: strictly increasing scores starting at 2.
		for i := 0; i < n; i++ {
			scores = append(scores, 2+i)
		}
	} else {
		scores = append(scores, longTimelineScores...)
		for len(scores) < n {
			scores = append([]int{2}, scores...)
		}
		scores = scores[len(scores)-n:]
	}

	labels := make([]int, 0, len(scores)+1)
	labels = append(labels, 1)
	labels = append(labels, scores...)

	return RecencyBins{Edges: edges, Labels: labels}
}

// Score looks up the recency score for a purchase date. A nil date (the
// customer never purchased) and dates outside all intervals score 0.
func (b RecencyBins) Score(date *time.Time) int {
	if date == nil {
		return 0
	}
	for i := 0; i+1 < len(b.Edges); i++ {
		if !date.Before(b.Edges[i]) && date.Before(b.Edges[i+1]) {
			return b.Labels[i]
		}
	}
	return 0
}

// MaxLabel returns the highest score in the table.
func (b RecencyBins) MaxLabel() int {
	max := 0
	for _, l := range b.Labels {
		if l > max {
			max = l
		}
	}
	return max
}
