package dataprocessing

import "strings"

// Row is a header-mapped sheet row: header cell -> trimmed field value.
type Row map[string]string

// Get returns the first non-empty value among the named columns. Sheets
// have been renamed over time, so several sources carry column aliases.
func (r Row) Get(names ...string) string {
	for _, n := range names {
		if v := r[n]; v != "" {
			return v
		}
	}
	return ""
}

// looksLikeHTML reports whether the payload is a markup document rather
// than delimited text. Published-sheet endpoints return an HTML error page
// when a source is unavailable; treating it as data would produce garbage
// rows, so the tokenizer rejects it outright.
func looksLikeHTML(raw string) bool {
	return strings.Contains(raw, "<!DOCTYPE") || strings.Contains(raw, "<html")
}

// Tokenize converts raw delimited text into ordered rows of trimmed field
// strings. The scan keeps one boolean quote state: inside quotes a doubled
// quote emits a literal quote, a single quote closes the field, and any
// other character, line terminators included, is kept verbatim. Outside
// quotes a comma ends the field, \n or \r\n ends the row, and bare \r is
// discarded.
//
// When keepBlank is false, rows that consist of a single empty field
// (wholly blank lines) are dropped. The chargebacks section extractor
// tokenizes with keepBlank set because blank rows there separate the
// summary and detail regions.
//
// Empty or HTML input yields no rows.
func Tokenize(raw string, keepBlank bool) [][]string {
	if raw == "" || looksLikeHTML(raw) {
		return nil
	}

	var rows [][]string
	var cur []string
	var field strings.Builder

	flushField := func() {
		cur = append(cur, strings.TrimSpace(field.String()))
		field.Reset()
	}
	flushRow := func() {
		if keepBlank || len(cur) > 1 || cur[0] != "" {
			rows = append(rows, cur)
		}
		cur = nil
	}

	inQuotes := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		var next byte
		if i+1 < len(raw) {
			next = raw[i+1]
		}

		if inQuotes {
			switch {
			case c == '"' && next == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				field.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '"':
			inQuotes = true
		case c == ',':
			flushField()
		case c == '\n' || (c == '\r' && next == '\n'):
			flushField()
			flushRow()
			if c == '\r' {
				i++
			}
		case c != '\r':
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(cur) > 0 {
		flushField()
		flushRow()
	}

	return rows
}

// ParseSheet tokenizes raw text and zips each data row against the header
// row (row 0). Values have embedded newlines stripped and are trimmed;
// missing trailing fields map to the empty string. Rows whose every field
// is empty are discarded, as is any sheet with fewer than two rows.
func ParseSheet(raw string) []Row {
	rows := Tokenize(raw, false)
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	mapped := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			var v string
			if i < len(cells) {
				v = strings.TrimSpace(strings.ReplaceAll(cells[i], "\n", ""))
			}
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			mapped = append(mapped, row)
		}
	}
	return mapped
}
