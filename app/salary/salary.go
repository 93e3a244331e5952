// Package salary extracts annual compensation ranges from free text.
//
// Disambiguation from job codes is explicit: a number without a currency
// marker anywhere in the text is only accepted as a salary when it has at
// least 6 digits after separator removal, while any "kr"/"NOK" marker in
// the text admits 4+ digit numbers. Qualitative text ("etter avtale")
// always yields no salary, regardless of embedded numbers.
package salary

import (
	"regexp"
	"strings"
)

// Result is a parsed salary with Min <= Max and the raw matched substring.
type Result struct {
	Min  int64
	Max  int64
	Text string
}

// Grouped thousands accept regular space, dot, NBSP, narrow NBSP and thin
// space as separators; otherwise 4 or more bare digits.
const numPat = `\d{1,3}(?:[ .\x{00A0}\x{202F}\x{2009}]\d{3})+|\d{4,}`

var (
	currencyRe = regexp.MustCompile(`(?i)\b(?:kr\.?|nok)`)
	rangeRe    = regexp.MustCompile(`(?i)(?:kr\.?|nok)?\s*(` + numPat + `)\s*[-\x{2013}]\s*(?:kr\.?|nok)?\s*(` + numPat + `)`)
	singleRe   = regexp.MustCompile(`(?i)(?:kr\.?|nok)?\s*(` + numPat + `)`)
)

var sepReplacer = strings.NewReplacer(" ", "", ".", "", ",", "", " ", "", " ", "", " ", "")

// Parse extracts (min, max) annual compensation from text. The second
// return value is false when the text carries no usable salary.
func Parse(text string) (Result, bool) {
	if text == "" {
		return Result{}, false
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "etter avtale") {
		return Result{}, false
	}

	hasCurrency := currencyRe.MatchString(text)

	// The first dash-pair can be a disqualified job-code pair, so every
	// range match is examined before falling back to single numbers.
	for _, m := range rangeRe.FindAllStringSubmatchIndex(text, -1) {
		if !qualifies(text[m[2]:m[3]], hasCurrency) || !qualifies(text[m[4]:m[5]], hasCurrency) {
			continue
		}
		lo := toInt(text[m[2]:m[3]])
		hi := toInt(text[m[4]:m[5]])
		if lo > hi {
			lo, hi = hi, lo
		}
		return Result{Min: lo, Max: hi, Text: strings.TrimSpace(text[m[0]:m[1]])}, true
	}

	for _, m := range singleRe.FindAllStringSubmatchIndex(text, -1) {
		num := text[m[2]:m[3]]
		if !qualifies(num, hasCurrency) {
			continue
		}
		val := toInt(num)
		return Result{Min: val, Max: val, Text: strings.TrimSpace(text[m[0]:m[1]])}, true
	}

	return Result{}, false
}

// qualifies applies the job-code disambiguation rule: with a currency
// marker anywhere in the text the raw pattern threshold (4+ digits) is
// enough, without one the number needs 6+ digits once separators are gone.
func qualifies(num string, hasCurrency bool) bool {
	if hasCurrency {
		return true
	}
	return len(sepReplacer.Replace(num)) >= 6
}

func toInt(num string) int64 {
	var v int64
	for _, ch := range sepReplacer.Replace(num) {
		v = v*10 + int64(ch-'0')
	}
	return v
}
