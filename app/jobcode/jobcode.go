// Package jobcode extracts job-code tokens and their adjacent titles from
// free text.
//
// A code is a 3-5 digit number anchored by one of the marker words
// "stillingskode" or "kode". Bare digit runs without a marker are never
// treated as codes since they collide with salaries and other page noise.
// Title association is attempted first: marker, code, a separator, then
// title text running until the next marker+code occurrence or end of text.
// When at least one title-bearing code exists, that set is authoritative;
// otherwise all marker-anchored codes are returned without titles.
package jobcode

import (
	"regexp"
	"strings"
)

// CodeTitle pairs a job code with the title found next to it, if any.
// Codes keep leading zeros.
type CodeTitle struct {
	Code  string
	Title string // empty when no title was associated
}

var codeRe = regexp.MustCompile(`(?i)\b(?:stillingskode|kode)\s*(\d{3,5})\b`)

// Separators accepted between a code and its title: hyphen, colon and
// en dash, deliberately widened with em dash since page authors use the
// two dashes interchangeably.
var sepRe = regexp.MustCompile(`^\s*[-:\x{2013}\x{2014}]\s*`)

// ExtractCodeTitles returns ordered distinct (code, title) pairs from text.
// Distinctness keeps the first occurrence of each code.
func ExtractCodeTitles(text string) []CodeTitle {
	if text == "" {
		return nil
	}

	matches := codeRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	type anchored struct {
		code  string
		title string
	}
	all := make([]anchored, 0, len(matches))
	anyTitled := false

	for i, m := range matches {
		code := text[m[2]:m[3]]

		// Candidate title runs from after the code to the start of the
		// next marker+code occurrence, or to end of text. Newlines are
		// allowed inside the title.
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		rest := text[m[1]:end]

		title := ""
		if loc := sepRe.FindStringIndex(rest); loc != nil {
			title = strings.TrimSpace(rest[loc[1]:])
		}
		if title != "" {
			anyTitled = true
		}
		all = append(all, anchored{code: code, title: title})
	}

	seen := make(map[string]bool)
	var pairs []CodeTitle
	for _, a := range all {
		// When titled pairs exist they are authoritative; untitled
		// duplicates elsewhere in the text are ignored.
		if anyTitled && a.title == "" {
			continue
		}
		if seen[a.code] {
			continue
		}
		seen[a.code] = true
		pairs = append(pairs, CodeTitle{Code: a.code, Title: a.title})
	}
	return pairs
}

// ExtractCodes returns the ordered distinct codes found in text.
func ExtractCodes(text string) []string {
	pairs := ExtractCodeTitles(text)
	if len(pairs) == 0 {
		return nil
	}
	codes := make([]string, 0, len(pairs))
	for _, p := range pairs {
		codes = append(codes, p.Code)
	}
	return codes
}
