// Package scoring turns aggregated customer profiles into RFM scores
// and final segment labels.
package scoring

import (
	"math"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

// monetaryBins holds the left-closed interval edges for the monetary
// score: [0,48) [48,98) [98,208) [208,603) [603,inf) -> 1..5.
var monetaryBins = []float64{48, 98, 208, 603}

// frequencyBins holds the right-closed interval edges for the frequency
// score: [0,1] (1,2] (2,4] (4,10] (10,inf) -> 1..5.
var frequencyBins = []float64{1, 2, 4, 10}

// MonetaryScore classifies weighted 5-year net revenue. The value is
// clamped to zero before binning; returns cannot produce a negative
// revenue class.
func MonetaryScore(weightedRevenue float64) int {
	if weightedRevenue < 0 {
		weightedRevenue = 0
	}
	score := 1
	for _, edge := range monetaryBins {
		if weightedRevenue >= edge {
			score++
		}
	}
	return score
}

// FrequencyScore classifies the weighted 5-year order count.
func FrequencyScore(weightedOrders float64) int {
	score := 1
	for _, edge := range frequencyBins {
		if weightedOrders > edge {
			score++
		}
	}
	return score
}

// CombinedScore blends monetary and frequency, weighting monetary twice
// as heavily. Rounding is half-up: round((2m+f)/3).
func CombinedScore(monetary, frequency int) int {
	return int(math.Round((float64(monetary)*2 + float64(frequency)) / 3))
}

// Apply fills in the four score fields of a profile. The recency score
// comes from the bin table; a customer without any dated purchase gets
// the explicit score 0, which is not a table lookup.
func Apply(p *model.CustomerProfile, bins period.RecencyBins) {
	p.RecencyScore = bins.Score(p.LastPurchase)
	p.MonetaryScore = MonetaryScore(p.WeightedRevenue)
	p.FrequencyScore = FrequencyScore(p.WeightedOrders)
	p.CombinedScore = CombinedScore(p.MonetaryScore, p.FrequencyScore)
}
