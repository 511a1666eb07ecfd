package dataprocessing

import (
	"opsdash/pkg/contracts/domain"
)

// Record mappers: one pure function per source domain. Each consumes the
// header-mapped rows of its sheet, normalizes fields, and applies the
// domain's inclusion predicate. There is no cross-row state.

// MapQA maps the quality-scoring sheet. Rows without an agent name are
// evaluation templates or spacer rows and are dropped.
func MapQA(raw string) []domain.QAEntry {
	rows := ParseSheet(raw)
	out := make([]domain.QAEntry, 0, len(rows))
	for _, row := range rows {
		e := domain.QAEntry{
			Date:               ParseDate(row["Date"]),
			Agent:              CleanText(row["Agent Name"]),
			Score:              ParseNumber(row["Final Score"]),
			Grade:              CleanText(row["Grade"]),
			SoftSkills:         ParseNumber(row["Soft Skills"]),
			IssueUnderstanding: ParseNumber(row["Issue Understanding"]),
			ProductProcess:     ParseNumber(row["Product & Process"]),
			ToolsUtilization:   ParseNumber(row["Tools Utilization"]),
			Violation:          CleanText(row["Zero Tolerance Violation"]),
		}
		if e.Violation == "" {
			e.Violation = "No"
		}
		if e.Agent == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MapProductivity maps the productivity sheet. "#REF!" is a broken-formula
// artifact that shows up in the agent column of hand-edited copies.
func MapProductivity(raw string) []domain.ProductivityEntry {
	rows := ParseSheet(raw)
	out := make([]domain.ProductivityEntry, 0, len(rows))
	for _, row := range rows {
		e := domain.ProductivityEntry{
			Date:           ParseDate(row["Date"]),
			Agent:          CleanText(row.Get("Agent Name", "Agent")),
			TicketsHandled: ParseNumber(row["Tickets replied"]),
			TicketsPerHour: ParseNumber(row["Ticket/hour"]),
			HoursWorked:    ParseNumber(row["Hours Worked"]),
		}
		if e.Agent == "" || e.Agent == "#REF!" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MapCsat maps the customer-satisfaction sheet. Scores outside 1..5 are
// unanswered or corrupted surveys.
func MapCsat(raw string) []domain.CsatEntry {
	rows := ParseSheet(raw)
	out := make([]domain.CsatEntry, 0, len(rows))
	for _, row := range rows {
		e := domain.CsatEntry{
			Date:  ParseDate(row["date"]),
			Agent: CleanText(row.Get("Agent Name", "assignee")),
			Score: ParseNumber(row["score"]),
		}
		if e.Agent == "" || e.Score < 1 || e.Score > 5 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MapRefunds maps the refunds sheet. The amount column was renamed when
// the sheet switched to EUR, so both headers are accepted.
func MapRefunds(raw string) []domain.RefundEntry {
	rows := ParseSheet(raw)
	out := make([]domain.RefundEntry, 0, len(rows))
	for _, row := range rows {
		e := domain.RefundEntry{
			Date:   ParseDate(row["Refund Date"]),
			Agent:  CleanText(row["Refunded By"]),
			Amount: ParseNumber(row.Get("Refund Amt EUR", "Refund Amount")),
			Reason: CleanText(row["Refund Reason 1"]),
		}
		if e.Agent == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MapBusiness maps the business P&L sheet. Rows without a parseable date
// are subtotal and annotation rows.
func MapBusiness(raw string) []domain.BusinessEntry {
	rows := ParseSheet(raw)
	out := make([]domain.BusinessEntry, 0, len(rows))
	for _, row := range rows {
		e := domain.BusinessEntry{
			Date:      ParseDate(row["date"]),
			Store:     CleanText(row["store"]),
			Product:   CleanText(row["friendly_name"]),
			Revenue:   ParseNumber(row["revenue"]),
			UnitsSold: ParseNumber(row["units_sold"]),
			Refunds:   ParseNumber(row["refunds"]),
			COGS:      ParseNumber(row["total_cogs"]),
			AdSpend:   ParseNumber(row["total_ad_spend"]),
			NetProfit: ParseNumber(row["net_profit"]),
			Orders:    ParseNumber(row["n_orders"]),
		}
		if e.Date == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
