package model

import (
	"strings"
	"time"
)

// salutations maps the numeric salutation codes of the address system to
// their printable German form.
var salutations = map[string]string{
	"1": "Herrn",
	"2": "Frau",
	"3": "Frau/Herr",
	"4": "Firma",
	"5": "Leer(Firmenadresse)",
	"6": "Fräulein",
	"7": "Familie",
	"X": "Divers",
}

// SalutationLabel translates a raw salutation code into its label.
// Unknown codes pass through unchanged so that bad source data stays
// visible in the export.
func SalutationLabel(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimSuffix(code, ".0")
	code = strings.TrimLeft(code, "0")
	if label, ok := salutations[code]; ok {
		return label
	}
	return code
}

// AgeGroupUnknown is the bucket for customers without a birth date.
const AgeGroupUnknown = "Keine Angabe"

// AgeGroup buckets a customer's age at the reference date into the
// reporting ranges.
func AgeGroup(birth *time.Time, reference time.Time) string {
	if birth == nil {
		return AgeGroupUnknown
	}
	age := reference.Year() - birth.Year()
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}
	switch {
	case age < 0:
		return AgeGroupUnknown
	case age <= 18:
		return "0-18"
	case age <= 30:
		return "19-30"
	case age <= 50:
		return "31-50"
	case age <= 65:
		return "51-65"
	default:
		return "65+"
	}
}
