// Package channel decodes raw acquisition source codes into canonical
// marketing channel names and an online/offline tag.
//
// A source code is a short customer-type prefix followed by a 3-5
// character campaign code, e.g. "XX3925fb". Classification runs an
// ordered rule list where every later match overwrites earlier ones:
// rule order encodes precedence and must not be changed. The generic
// rules (e.g. "Social Media" for the 925 block) are listed before the
// specific ones ("Pinterest", "Instagram", "Facebook") so the specific
// rules win.
package channel

import "strings"

// Channel tags.
const (
	TagOnline  = "Online"
	TagOffline = "Offline"
	TagAltcode = "Altcode"
)

// Altcode is the fallback channel for codes no rule matches. Channel
// taxonomies grow over time, so an unknown code is expected data, not
// an error.
const Altcode = "Altcode"

type rule struct {
	match   func(code string) bool
	channel string
}

// campaign returns the campaign part of a source code (everything after
// the 3-character customer-type prefix).
func campaign(code string) string {
	if len(code) <= 3 {
		return ""
	}
	return code[3:]
}

// block returns the 3-digit campaign block (positions 3-5).
func block(code string) string {
	if len(code) < 6 {
		return ""
	}
	return code[3:6]
}

func campaignIs(want string) func(string) bool {
	return func(code string) bool { return campaign(code) == want }
}

func blockIs(want ...string) func(string) bool {
	return func(code string) bool {
		b := block(code)
		for _, w := range want {
			if b == w {
				return true
			}
		}
		return false
	}
}

func containsAnyFold(subs ...string) func(string) bool {
	return func(code string) bool {
		lower := strings.ToLower(code)
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// thirdPartyBlock matches codes whose campaign starts with digit 1-4
// followed by one of the given two-digit groups, the numbering scheme
// of externally sourced addresses.
func thirdPartyBlock(groups ...string) func(string) bool {
	return func(code string) bool {
		if len(code) < 6 {
			return false
		}
		if code[3] < '1' || code[3] > '4' {
			return false
		}
		g := code[4:6]
		for _, w := range groups {
			if g == w {
				return true
			}
		}
		return false
	}
}

// rules is evaluated top to bottom with last-match-wins semantics.
var rules = []rule{
	{campaignIs("921am"), "Amazon"},
	{blockIs("929"), "AWIN"},
	{blockIs("938"), "Blätterkatalog"},
	{blockIs("943"), "Corporate Benefits"},
	{containsAnyFold("936gm", "925gm"), "Genussmagazin"},
	{containsAnyFold("926gs", "924gs"), "Google Shopping"},
	{containsAnyFold("20i", "int"), "Internet Import"},
	{campaignIs("022iv"), "Inventur Trost"},
	{campaignIs("921lh"), "Lionshome"},
	{blockIs("923"), "Newsletter"},
	{campaignIs("923na"), "Newsletter Angebot"},
	{campaignIs("923nr"), "Newsletter Rezept"},
	{campaignIs("923nt"), "Newsletter Thema"},
	{campaignIs("921ot"), "Otto"},
	{blockIs("926"), "Google SEA"},
	{campaignIs("926br"), "SEA Brand"},
	{campaignIs("926sa"), "SEA Non-Brand"},
	{blockIs("927"), "SEO"},
	{campaignIs("927br"), "SEO Brand"},
	{campaignIs("927so"), "SEO Non-Brand"},
	{blockIs("925"), "Social Media"},
	{containsAnyFold("925pi", "925pt", "932aa", "pinterest"), "Pinterest"},
	{containsAnyFold("925ig"), "Instagram"},
	{containsAnyFold("925fb"), "Facebook"},
	{containsAnyFold("928so", "sov"), "Sovendus"},
	{thirdPartyBlock("01"), "Fremdadressen"},
	{thirdPartyBlock("02", "03", "04"), "Katalog und Karte"},
	{blockIs("011", "012", "013"), "Beilage"},
	{blockIs("040"), "Beilage"},
	{blockIs("060"), "Geburtstagskarte"},
	{blockIs("000"), "Kataloganforderung"},
	{blockIs("030"), "Freundschaftswerbung"},
	{blockIs("014"), "Mailing"},
	{blockIs("016"), "Blackweek"},
}

// onlineChannels and offlineChannels partition the channel names for tag
// derivation. Altcode belongs to neither set.
var onlineChannels = map[string]struct{}{
	"Amazon": {}, "AWIN": {}, "Blätterkatalog": {}, "Corporate Benefits": {},
	"Genussmagazin": {}, "Google Shopping": {}, "Internet Import": {},
	"Inventur Trost": {}, "Lionshome": {}, "Newsletter": {},
	"Newsletter Angebot": {}, "Newsletter Rezept": {}, "Newsletter Thema": {},
	"Otto": {}, "Google SEA": {}, "SEA Brand": {}, "SEA Non-Brand": {},
	"SEO": {}, "SEO Brand": {}, "SEO Non-Brand": {}, "Social Media": {},
	"Pinterest": {}, "Instagram": {}, "Facebook": {}, "Sovendus": {},
}

var offlineChannels = map[string]struct{}{
	"Fremdadressen": {}, "Katalog und Karte": {}, "Beilage": {},
	"Geburtstagskarte": {}, "Kataloganforderung": {},
	"Freundschaftswerbung": {}, "Mailing": {}, "Blackweek": {},
}

// Classify maps a raw source code to its canonical channel name and tag.
// It is deterministic and stateless: the same code always yields the
// same result.
func Classify(code string) (channel, tag string) {
	channel = Altcode
	for _, r := range rules {
		if r.match(code) {
			channel = r.channel
		}
	}
	return channel, Tag(channel)
}

// Tag derives the online/offline tag from a channel name.
func Tag(channel string) string {
	if _, ok := onlineChannels[channel]; ok {
		return TagOnline
	}
	if _, ok := offlineChannels[channel]; ok {
		return TagOffline
	}
	return TagAltcode
}
