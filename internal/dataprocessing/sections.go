package dataprocessing

import (
	"strings"

	"opsdash/pkg/contracts/domain"
)

// totalRowLabel is the sentinel the sheet uses for its own aggregate row.
// The row is carried through verbatim, never recomputed here.
const totalRowLabel = "Total/Avg"

// detailHeaderMarker addresses the start of the variable-length detail
// block: the first row whose first cell contains this literal.
const detailHeaderMarker = "Case"

// ExtractChargebacks splits the irregular chargebacks sheet into its three
// regions. The sheet stacks two independently shaped tables: a fixed-offset
// per-MID summary block (rows 2..detail header, after a title and a header
// row) and a positional 11-column detail block below the "Case ID" header.
// Blank rows are retained during tokenization because they separate the
// regions.
//
// Malformed input degrades rather than fails: empty/HTML payloads yield an
// empty sheet, unparsable numeric cells yield 0, and a missing detail
// header yields no details.
func ExtractChargebacks(raw string) domain.ChargebackSheet {
	sheet := domain.ChargebackSheet{
		Summary: []domain.ChargebackMIDSummary{},
		Details: []domain.ChargebackDetail{},
	}

	rows := Tokenize(raw, true)
	if len(rows) == 0 {
		return sheet
	}

	detailIdx := -1
	for i, row := range rows {
		if len(row) > 0 && strings.Contains(row[0], detailHeaderMarker) {
			detailIdx = i
			break
		}
	}

	summaryEnd := len(rows)
	if detailIdx > 0 {
		summaryEnd = detailIdx
	}
	for i := 2; i < summaryEnd; i++ {
		row := rows[i]
		if len(row) == 0 || row[0] == "" || strings.Contains(row[0], detailHeaderMarker) {
			continue
		}
		entry := domain.ChargebackMIDSummary{
			MID:         strings.TrimSpace(row[0]),
			Chargebacks: ParseCount(cell(row, 1)),
			Payments:    ParseCount(cell(row, 2)),
			CBPct:       ParseNumber(cell(row, 3)),
		}
		if row[0] == totalRowLabel {
			// At most one aggregate row; a later occurrence overwrites.
			total := entry
			sheet.Total = &total
		} else {
			sheet.Summary = append(sheet.Summary, entry)
		}
	}

	if detailIdx >= 0 {
		for _, row := range rows[detailIdx+1:] {
			if len(row) == 0 || row[0] == "" {
				continue
			}
			d := domain.ChargebackDetail{
				CaseID:        CleanText(cell(row, 0)),
				FilingDate:    CleanText(cell(row, 1)),
				TransactionID: CleanText(cell(row, 2)),
				Reason:        CleanText(cell(row, 3)),
				Amount:        ParseNumber(cell(row, 4)),
				Currency:      CleanText(cell(row, 5)),
				PaymentMethod: CleanText(cell(row, 6)),
				OrderID:       CleanText(cell(row, 7)),
				SKU:           CleanText(cell(row, 8)),
				Product:       CleanText(cell(row, 9)),
				Country:       CleanText(cell(row, 10)),
			}
			d.Date = ParseDate(d.FilingDate)
			sheet.Details = append(sheet.Details, d)
		}
	}

	return sheet
}

// cell returns the field at index i, or "" when the row is too short.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
