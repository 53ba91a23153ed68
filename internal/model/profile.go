package model

import "time"

// CustomerProfile is the per-customer result row produced by the pipeline.
// It is created by the aggregator, enriched by the scorer and the segment
// classifier, and terminal once exported.
type CustomerProfile struct {
	CustomerID string `json:"customerId"`

	// Demographics
	Salutation string `json:"salutation"`
	AgeGroup   string `json:"ageGroup"`
	PostalCode string `json:"postalCode"`

	// Acquisition
	Channel    string `json:"channel"`
	ChannelTag string `json:"channelTag"`

	NewsletterType string `json:"newsletterType"`

	// Temporal
	RegisteredAt  *time.Time `json:"registeredAt"`
	FirstPurchase *time.Time `json:"firstPurchase"`
	LastPurchase  *time.Time `json:"lastPurchase"`

	// Lifetime behavior
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`

	// Split behavior: 3-5 years ago vs. the last 2 years, plus the
	// 0.5-weighted 5-year figures derived from them.
	OrdersOld       int     `json:"ordersOld"`
	RevenueOld      float64 `json:"revenueOld"`
	OrdersRecent    int     `json:"ordersRecent"`
	RevenueRecent   float64 `json:"revenueRecent"`
	WeightedOrders  float64 `json:"weightedOrders"`
	WeightedRevenue float64 `json:"weightedRevenue"`

	SeasonalEaster    bool `json:"seasonalEaster"`
	SeasonalChristmas bool `json:"seasonalChristmas"`

	// Scores
	RecencyScore   int `json:"recencyScore"`
	MonetaryScore  int `json:"monetaryScore"`
	FrequencyScore int `json:"frequencyScore"`
	CombinedScore  int `json:"combinedScore"`

	Segment string `json:"segment"`

	// PriorGroup is the segment label carried over from the previous run.
	// Used only for cross-tabulation, never for scoring.
	PriorGroup string `json:"priorGroup,omitempty"`
}

// HasPurchased reports whether the customer has at least one dated order.
func (p *CustomerProfile) HasPurchased() bool {
	return p.FirstPurchase != nil
}
