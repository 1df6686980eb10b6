// Package format turns upstream values into the display strings used on prisoner profile pages.
package format

import (
	"strings"
	"time"
	"unicode"
)

const (
	dateLayout     = "2 January 2006"
	dateTimeLayout = "02/01/2006 - 15:04"
	// QueryDateLayout date format accepted in query strings and sent to prison-api.
	QueryDateLayout = "2006-01-02"
)

// Date "10 January 2024"; zero time gives "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// DateTime "10/01/2024 - 14:30"; zero time gives "".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// ProperCase capitalises each word, keeping hyphenated and apostrophe names intact ("O'BRIEN-SMITH" -> "O'Brien-Smith").
func ProperCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		upper = r == ' ' || r == '-' || r == '\''
	}
	return b.String()
}

// Name "John Smith"
func Name(first, last string) string {
	return strings.TrimSpace(ProperCase(first) + " " + ProperCase(last))
}

// NameLastFirst "Smith, John"
func NameLastFirst(first, last string) string {
	switch {
	case last == "":
		return ProperCase(first)
	case first == "":
		return ProperCase(last)
	}
	return ProperCase(last) + ", " + ProperCase(first)
}

// temporary locations have no physical cell behind them
var temporaryLocations = map[string]string{
	"CSWAP": "No cell allocated",
	"RECP":  "Reception",
	"COURT": "Court",
	"TAP":   "Temporary absence",
}

// Location strips the "{agency}-" prefix from a location description ("MDI-1-1-001" -> "1-1-001")
// and names temporary locations.
func Location(description, agencyID string) string {
	desc := description
	if agencyID != "" {
		desc = strings.TrimPrefix(desc, agencyID+"-")
	}
	if name, ok := temporaryLocations[desc]; ok {
		return name
	}
	return desc
}

// IsTemporaryLocation reports whether the description refers to a non-cell location.
func IsTemporaryLocation(description, agencyID string) bool {
	desc := description
	if agencyID != "" {
		desc = strings.TrimPrefix(desc, agencyID+"-")
	}
	_, ok := temporaryLocations[desc]
	return ok
}
