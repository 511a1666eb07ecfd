package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	monthDayYearRe = regexp.MustCompile(`([A-Za-z]+)\s+(\d+),?\s+(\d+)`)
	isoPrefixRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	canonicalRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericRe      = regexp.MustCompile(`[^0-9.\-]`)
)

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// CleanText strips literal newlines and the two-character "\n" escape from
// a field value and trims surrounding whitespace. Empty input stays empty.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, `\n`, "")
	return strings.TrimSpace(s)
}

// ParseDate coerces free-form sheet dates into canonical YYYY-MM-DD form.
// Three shapes are recognized, in order: a three-letter month-name prefix
// ("Jan 5, 2024"), a slash-delimited M/D/Y form where two-digit years mean
// 2000+YY ("3/9/24"), and a string already starting with an ISO date,
// which is truncated to the date prefix ("2024-07-01T00:00").
//
// Anything else is returned cleaned but otherwise unchanged: the lexical
// fallback keeps dirty values visible downstream instead of dropping the
// record. Empty input yields "".
func ParseDate(s string) string {
	str := CleanText(s)
	if str == "" {
		return ""
	}

	for i, m := range monthAbbrevs {
		if !strings.HasPrefix(str, m) {
			continue
		}
		if parts := monthDayYearRe.FindStringSubmatch(str); parts != nil {
			day, dayErr := strconv.Atoi(parts[2])
			year, yearErr := strconv.Atoi(parts[3])
			if dayErr == nil && yearErr == nil {
				return fmt.Sprintf("%04d-%02d-%02d", year, i+1, day)
			}
		}
		break
	}

	if strings.Contains(str, "/") {
		if parts := strings.Split(str, "/"); len(parts) == 3 {
			month, mErr := strconv.Atoi(strings.TrimSpace(parts[0]))
			day, dErr := strconv.Atoi(strings.TrimSpace(parts[1]))
			year, yErr := strconv.Atoi(strings.TrimSpace(parts[2]))
			if mErr == nil && dErr == nil && yErr == nil {
				if year < 100 {
					year += 2000
				}
				return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			}
		}
	}

	if isoPrefixRe.MatchString(str) {
		return str[:10]
	}

	return str
}

// IsCanonicalDate reports whether s matches YYYY-MM-DD exactly.
func IsCanonicalDate(s string) bool {
	return canonicalRe.MatchString(s)
}

// ParseNumber strips every character that is not a digit, dot or minus
// sign and parses the remainder as a float. Empty, non-numeric and literal
// "nan" input all yield 0; the pipeline never surfaces a numeric parse
// failure.
func ParseNumber(s string) float64 {
	if s == "" || s == "nan" {
		return 0
	}
	cleaned := numericRe.ReplaceAllString(s, "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseCount is ParseNumber truncated to an int, for count-shaped columns.
func ParseCount(s string) int {
	return int(ParseNumber(s))
}
