package model

// Segment labels. The vocabulary is closed: every profile ends up with
// exactly one of these 14 labels.
const (
	SegmentChampions      = "Champions"
	SegmentLoyal          = "Treue Kunden"
	SegmentCantLose       = "Nicht zu verlieren"
	SegmentPotentialLoyal = "Potenziell loyale Kunden"
	SegmentNeedAttention  = "Brauchen Aufmerksamkeit"
	SegmentAtRisk         = "Gefährdete Kunden"
	SegmentNew            = "Neukunden"
	SegmentReactivated    = "Reaktivierte Kunden"
	SegmentPromising      = "Vielversprechende Kunden"
	SegmentChurning       = "Abwandernde Kunden"
	SegmentSleeping       = "Schlafende Kunden"
	SegmentLost           = "Verlorene Kunden"
	SegmentProspect       = "Interessenten"
	SegmentUnclassified   = "Nicht klassifiziert"
)

// SegmentOrder is the canonical reporting order of all segment labels.
var SegmentOrder = []string{
	SegmentChampions,
	SegmentLoyal,
	SegmentCantLose,
	SegmentPotentialLoyal,
	SegmentNeedAttention,
	SegmentAtRisk,
	SegmentNew,
	SegmentReactivated,
	SegmentPromising,
	SegmentChurning,
	SegmentSleeping,
	SegmentLost,
	SegmentProspect,
	SegmentUnclassified,
}

var segmentSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SegmentOrder))
	for _, s := range SegmentOrder {
		m[s] = struct{}{}
	}
	return m
}()

// IsValidSegment reports whether label is part of the closed vocabulary.
func IsValidSegment(label string) bool {
	_, ok := segmentSet[label]
	return ok
}

// SegmentRank returns the position of label in SegmentOrder, or
// len(SegmentOrder) for labels outside the vocabulary.
func SegmentRank(label string) int {
	for i, s := range SegmentOrder {
		if s == label {
			return i
		}
	}
	return len(SegmentOrder)
}
