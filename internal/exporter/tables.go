package exporter

import (
	"strconv"
	"strings"

	"opsdash/internal/dataprocessing"
	"opsdash/pkg/contracts/domain"
)

// Table is one exportable summary: a named header row plus string cells.
// Name doubles as the xlsx sheet name.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// FileName derives the CSV file name from the table name.
func (t Table) FileName() string {
	return strings.ToLower(strings.ReplaceAll(t.Name, " ", "_")) + ".csv"
}

func fmtInt(v int) string { return strconv.Itoa(v) }

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QATable renders the per-agent QA summary.
func QATable(entries []domain.QAEntry) Table {
	t := Table{
		Name:    "QA",
		Headers: []string{"Agent", "Avg Score", "Evaluations", "Violations", "Top Grade"},
	}
	for _, a := range dataprocessing.SummarizeQAByAgent(entries) {
		t.Rows = append(t.Rows, []string{
			a.Agent, fmtFloat(a.AvgScore), fmtInt(a.Evaluations),
			fmtInt(a.Violations), a.TopGrade,
		})
	}
	return t
}

// ProductivityTable renders the per-agent productivity summary.
func ProductivityTable(entries []domain.ProductivityEntry) Table {
	t := Table{
		Name:    "Productivity",
		Headers: []string{"Agent", "Tickets Handled", "Hours Worked", "Tickets Per Hour", "Days"},
	}
	for _, a := range dataprocessing.SummarizeProductivityByAgent(entries) {
		t.Rows = append(t.Rows, []string{
			a.Agent, fmtInt(a.TicketsHandled), fmtFloat(a.HoursWorked),
			fmtFloat(a.TicketsPerHour), fmtInt(a.Days),
		})
	}
	return t
}

// CsatTable renders the per-agent CSAT summary with the star distribution.
func CsatTable(entries []domain.CsatEntry) Table {
	t := Table{
		Name:    "CSAT",
		Headers: []string{"Agent", "Avg Rating", "Responses", "5 Star", "4 Star", "3 Star", "2 Star", "1 Star", "Positive Rate %"},
	}
	for _, a := range dataprocessing.SummarizeCsatByAgent(entries) {
		t.Rows = append(t.Rows, []string{
			a.Agent, fmtFloat(a.AvgRating), fmtInt(a.Responses),
			fmtInt(a.FiveStar), fmtInt(a.FourStar), fmtInt(a.ThreeStar),
			fmtInt(a.TwoStar), fmtInt(a.OneStar), fmtInt(a.PositiveRate),
		})
	}
	return t
}

// RefundsTable renders the per-agent refund summary.
func RefundsTable(entries []domain.RefundEntry) Table {
	t := Table{
		Name:    "Refunds",
		Headers: []string{"Agent", "Refunds Processed", "Total Amount", "Avg Amount"},
	}
	for _, a := range dataprocessing.SummarizeRefundsByAgent(entries) {
		t.Rows = append(t.Rows, []string{
			a.Agent, fmtInt(a.RefundsProcessed), fmtFloat(a.TotalAmount), fmtFloat(a.AvgAmount),
		})
	}
	return t
}

// ChargebacksTable renders the per-MID (or per-payment-method) chargeback
// summary.
func ChargebacksTable(sheet domain.ChargebackSheet) Table {
	t := Table{
		Name:    "Chargebacks",
		Headers: []string{"MID", "Chargebacks", "Payments", "CB Rate", "Amount", "Risk"},
	}
	for _, row := range dataprocessing.SummarizeChargebacksByMID(sheet.Details, sheet.Summary) {
		t.Rows = append(t.Rows, []string{
			row.MID, fmtInt(row.Count), fmtInt(row.Payments),
			fmtFloat(row.CBPct), fmtFloat(row.Amount), row.RiskLevel,
		})
	}
	return t
}

// BusinessTable renders the per-product P&L summary.
func BusinessTable(entries []domain.BusinessEntry) Table {
	t := Table{
		Name:    "Business",
		Headers: []string{"Product", "Revenue", "Orders", "Units", "Net Profit", "Ad Spend", "COGS", "Refunds"},
	}
	for _, g := range dataprocessing.SummarizeBusinessByProduct(entries) {
		t.Rows = append(t.Rows, []string{
			g.Key, fmtFloat(g.Revenue), fmtFloat(g.Orders), fmtFloat(g.Units),
			fmtFloat(g.Profit), fmtFloat(g.AdSpend), fmtFloat(g.COGS), fmtFloat(g.Refunds),
		})
	}
	return t
}
