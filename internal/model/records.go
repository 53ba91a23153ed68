package model

import (
	"strings"
	"time"
)

// OrderRecord is one raw order row as read from the invoice extract.
// OrderDate is nil when the source field was empty or unparseable.
type OrderRecord struct {
	CustomerID string     `json:"customerId"`
	OrderID    string     `json:"orderId"`
	OrderDate  *time.Time `json:"orderDate"`
	GrossValue float64    `json:"grossValue"`
	Tax1       float64    `json:"tax1"`
	Tax2       float64    `json:"tax2"`
	Tax3       float64    `json:"tax3"`
}

// NetRevenue returns the net order value (gross minus all tax components).
func (o OrderRecord) NetRevenue() float64 {
	return o.GrossValue - o.Tax1 - o.Tax2 - o.Tax3
}

// RawCustomerRecord is one raw address row as read from the address extract.
type RawCustomerRecord struct {
	CustomerID     string     `json:"customerId"`
	RegisteredAt   *time.Time `json:"registeredAt"`
	BirthDate      *time.Time `json:"birthDate"`
	PostalCode     string     `json:"postalCode"`
	SalutationCode string     `json:"salutationCode"`
	SourceCode     string     `json:"sourceCode"`
	NewsletterType string     `json:"newsletterType"`
}

// NormalizeCustomerID left-pads a customer id with zeros to the fixed
// 10-digit width used across all source systems.
func NormalizeCustomerID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimSuffix(id, ".0")
	if len(id) >= 10 {
		return id
	}
	return strings.Repeat("0", 10-len(id)) + id
}

// CustomerIDFromReference extracts the customer id embedded in an order
// reference field. The reference carries a 2-character prefix followed by
// the 10-digit id.
func CustomerIDFromReference(ref string) string {
	if len(ref) >= 12 {
		return ref[2:12]
	}
	if len(ref) > 2 {
		return NormalizeCustomerID(ref[2:])
	}
	return NormalizeCustomerID(ref)
}
