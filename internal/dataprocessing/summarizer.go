package dataprocessing

import (
	"math"
	"sort"

	"opsdash/pkg/contracts/domain"
)

// Rollup thresholds. QA evaluations at or above qaPassScore count as a
// pass; CSAT responses at or above csatPositiveScore count as positive.
const (
	qaPassScore       = 70.0
	csatPositiveScore = 4.0
)

// Chargeback-ratio risk thresholds, compared against the raw decimal
// fraction exactly as stored on the sheet.
const (
	cbHighRiskPct = 0.01
	cbWarningPct  = 0.005
)

// groupBy partitions records by the key selector. Group membership is
// order-independent; callers sort the derived rows before returning them.
func groupBy[T any](records []T, key func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// topValue returns the most frequent value, breaking ties lexically so
// repeated aggregation of the same records is deterministic. Empty input
// yields "-".
func topValue(counts map[string]int) string {
	best, bestCount := "-", 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && best != "-" && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// pct returns part/whole as a whole-number percentage, 0 when whole is 0.
func pct(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// ---- QA ----

type QAAgentSummary struct {
	Agent       string  `json:"agent"`
	AvgScore    float64 `json:"avgScore"`
	Evaluations int     `json:"evaluations"`
	Violations  int     `json:"violations"`
	TopGrade    string  `json:"topGrade"`
}

type QATrendPoint struct {
	Date        string  `json:"date"`
	AvgScore    float64 `json:"avgScore"`
	Evaluations int     `json:"evaluations"`
}

type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

type QAOverview struct {
	Evaluations int     `json:"evaluations"`
	AvgScore    float64 `json:"avgScore"`
	PassRate    int     `json:"passRate"`
	Violations  int     `json:"violations"`
}

// SummarizeQAByAgent ranks agents by average score descending.
func SummarizeQAByAgent(entries []domain.QAEntry) []QAAgentSummary {
	groups := groupBy(entries, func(e domain.QAEntry) string { return e.Agent })
	out := make([]QAAgentSummary, 0, len(groups))
	for agent, recs := range groups {
		var total float64
		var violations int
		grades := make(map[string]int)
		for _, e := range recs {
			total += e.Score
			if e.Violation == "Yes" {
				violations++
			}
			if e.Grade != "" {
				grades[e.Grade]++
			}
		}
		out = append(out, QAAgentSummary{
			Agent:       agent,
			AvgScore:    round1(total / float64(len(recs))),
			Evaluations: len(recs),
			Violations:  violations,
			TopGrade:    topValue(grades),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgScore != out[j].AvgScore {
			return out[i].AvgScore > out[j].AvgScore
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// SummarizeQATrend produces the time-ordered average-score series.
func SummarizeQATrend(entries []domain.QAEntry) []QATrendPoint {
	groups := groupBy(entries, func(e domain.QAEntry) string { return e.Date })
	delete(groups, "")
	out := make([]QATrendPoint, 0, len(groups))
	for date, recs := range groups {
		var total float64
		for _, e := range recs {
			total += e.Score
		}
		out = append(out, QATrendPoint{
			Date:        date,
			AvgScore:    round1(total / float64(len(recs))),
			Evaluations: len(recs),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SummarizeGrades counts grade occurrences, most frequent first.
func SummarizeGrades(entries []domain.QAEntry) []GradeCount {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Grade != "" {
			counts[e.Grade]++
		}
	}
	out := make([]GradeCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GradeCount{Grade: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Grade < out[j].Grade
	})
	return out
}

// OverviewQA computes the headline QA metrics for the filtered records.
func OverviewQA(entries []domain.QAEntry) QAOverview {
	ov := QAOverview{Evaluations: len(entries)}
	if len(entries) == 0 {
		return ov
	}
	var total float64
	var passes int
	for _, e := range entries {
		total += e.Score
		if e.Score >= qaPassScore {
			passes++
		}
		if e.Violation == "Yes" {
			ov.Violations++
		}
	}
	ov.AvgScore = round1(total / float64(len(entries)))
	ov.PassRate = pct(passes, len(entries))
	return ov
}

// ---- Productivity ----

type ProductivityAgentSummary struct {
	Agent          string  `json:"agent"`
	TicketsHandled int     `json:"ticketsHandled"`
	HoursWorked    float64 `json:"hoursWorked"`
	TicketsPerHour float64 `json:"ticketsPerHour"`
	Days           int     `json:"days"`
}

type ProductivityTrendPoint struct {
	Date    string  `json:"date"`
	Tickets int     `json:"tickets"`
	Hours   float64 `json:"hours"`
}

type ProductivityOverview struct {
	TotalTickets      int     `json:"totalTickets"`
	TotalHours        float64 `json:"totalHours"`
	AvgTicketsPerHour float64 `json:"avgTicketsPerHour"`
	Agents            int     `json:"agents"`
}

// SummarizeProductivityByAgent ranks agents by total tickets descending.
// Tickets-per-hour is recomputed from the rolled-up sums, not averaged
// from the per-row rates.
func SummarizeProductivityByAgent(entries []domain.ProductivityEntry) []ProductivityAgentSummary {
	groups := groupBy(entries, func(e domain.ProductivityEntry) string { return e.Agent })
	out := make([]ProductivityAgentSummary, 0, len(groups))
	for agent, recs := range groups {
		var tickets, hours float64
		for _, e := range recs {
			tickets += e.TicketsHandled
			hours += e.HoursWorked
		}
		perHour := 0.0
		if hours > 0 {
			perHour = round1(tickets / hours)
		}
		out = append(out, ProductivityAgentSummary{
			Agent:          agent,
			TicketsHandled: int(math.Round(tickets)),
			HoursWorked:    round1(hours),
			TicketsPerHour: perHour,
			Days:           len(recs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TicketsHandled != out[j].TicketsHandled {
			return out[i].TicketsHandled > out[j].TicketsHandled
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// SummarizeProductivityTrend produces the time-ordered ticket/hour series.
func SummarizeProductivityTrend(entries []domain.ProductivityEntry) []ProductivityTrendPoint {
	groups := groupBy(entries, func(e domain.ProductivityEntry) string { return e.Date })
	delete(groups, "")
	out := make([]ProductivityTrendPoint, 0, len(groups))
	for date, recs := range groups {
		var tickets, hours float64
		for _, e := range recs {
			tickets += e.TicketsHandled
			hours += e.HoursWorked
		}
		out = append(out, ProductivityTrendPoint{
			Date:    date,
			Tickets: int(math.Round(tickets)),
			Hours:   round1(hours),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OverviewProductivity computes the headline productivity metrics.
func OverviewProductivity(agents []ProductivityAgentSummary) ProductivityOverview {
	ov := ProductivityOverview{Agents: len(agents)}
	for _, a := range agents {
		ov.TotalTickets += a.TicketsHandled
		ov.TotalHours += a.HoursWorked
	}
	ov.TotalHours = round1(ov.TotalHours)
	ov.AvgTicketsPerHour = round1(float64(ov.TotalTickets) / math.Max(ov.TotalHours, 1))
	return ov
}

// ---- CSAT ----

type CsatAgentSummary struct {
	Agent        string  `json:"agent"`
	AvgRating    float64 `json:"avgRating"`
	Responses    int     `json:"responses"`
	FiveStar     int     `json:"fiveStar"`
	FourStar     int     `json:"fourStar"`
	ThreeStar    int     `json:"threeStar"`
	TwoStar      int     `json:"twoStar"`
	OneStar      int     `json:"oneStar"`
	PositiveRate int     `json:"positiveRate"`
}

type CsatTrendPoint struct {
	Date      string  `json:"date"`
	AvgRating float64 `json:"avgRating"`
	Responses int     `json:"responses"`
}

type CsatOverview struct {
	Responses    int     `json:"responses"`
	AvgRating    float64 `json:"avgRating"`
	FiveStarRate int     `json:"fiveStarRate"`
	PositiveRate int     `json:"positiveRate"`
}

// SummarizeCsatByAgent ranks agents by average rating descending, with the
// full star-count distribution per agent.
func SummarizeCsatByAgent(entries []domain.CsatEntry) []CsatAgentSummary {
	groups := groupBy(entries, func(e domain.CsatEntry) string { return e.Agent })
	out := make([]CsatAgentSummary, 0, len(groups))
	for agent, recs := range groups {
		s := CsatAgentSummary{Agent: agent, Responses: len(recs)}
		var total float64
		for _, e := range recs {
			total += e.Score
			switch int(e.Score) {
			case 5:
				s.FiveStar++
			case 4:
				s.FourStar++
			case 3:
				s.ThreeStar++
			case 2:
				s.TwoStar++
			case 1:
				s.OneStar++
			}
		}
		s.AvgRating = round2(total / float64(len(recs)))
		s.PositiveRate = pct(s.FiveStar+s.FourStar, len(recs))
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// SummarizeCsatTrend produces the time-ordered average-rating series.
func SummarizeCsatTrend(entries []domain.CsatEntry) []CsatTrendPoint {
	groups := groupBy(entries, func(e domain.CsatEntry) string { return e.Date })
	delete(groups, "")
	out := make([]CsatTrendPoint, 0, len(groups))
	for date, recs := range groups {
		var total float64
		for _, e := range recs {
			total += e.Score
		}
		out = append(out, CsatTrendPoint{
			Date:      date,
			AvgRating: round2(total / float64(len(recs))),
			Responses: len(recs),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OverviewCsat computes the headline CSAT metrics.
func OverviewCsat(entries []domain.CsatEntry) CsatOverview {
	ov := CsatOverview{Responses: len(entries)}
	if len(entries) == 0 {
		return ov
	}
	var total float64
	var five, positive int
	for _, e := range entries {
		total += e.Score
		if e.Score == 5 {
			five++
		}
		if e.Score >= csatPositiveScore {
			positive++
		}
	}
	ov.AvgRating = round2(total / float64(len(entries)))
	ov.FiveStarRate = pct(five, len(entries))
	ov.PositiveRate = pct(positive, len(entries))
	return ov
}

// ---- Refunds ----

type RefundAgentSummary struct {
	Agent            string  `json:"agent"`
	RefundsProcessed int     `json:"refundsProcessed"`
	TotalAmount      float64 `json:"totalAmount"`
	AvgAmount        float64 `json:"avgAmount"`
}

type RefundTrendPoint struct {
	Date    string  `json:"date"`
	Refunds int     `json:"refunds"`
	Amount  float64 `json:"amount"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type RefundOverview struct {
	Refunds     int     `json:"refunds"`
	TotalAmount float64 `json:"totalAmount"`
	AvgAmount   float64 `json:"avgAmount"`
	Agents      int     `json:"agents"`
}

// SummarizeRefundsByAgent ranks agents by refunds processed descending.
func SummarizeRefundsByAgent(entries []domain.RefundEntry) []RefundAgentSummary {
	groups := groupBy(entries, func(e domain.RefundEntry) string { return e.Agent })
	out := make([]RefundAgentSummary, 0, len(groups))
	for agent, recs := range groups {
		var amount float64
		for _, e := range recs {
			amount += e.Amount
		}
		out = append(out, RefundAgentSummary{
			Agent:            agent,
			RefundsProcessed: len(recs),
			TotalAmount:      round2(amount),
			AvgAmount:        round2(amount / float64(len(recs))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RefundsProcessed != out[j].RefundsProcessed {
			return out[i].RefundsProcessed > out[j].RefundsProcessed
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// SummarizeRefundTrend produces the time-ordered refund count/amount series.
func SummarizeRefundTrend(entries []domain.RefundEntry) []RefundTrendPoint {
	groups := groupBy(entries, func(e domain.RefundEntry) string { return e.Date })
	delete(groups, "")
	out := make([]RefundTrendPoint, 0, len(groups))
	for date, recs := range groups {
		var amount float64
		for _, e := range recs {
			amount += e.Amount
		}
		out = append(out, RefundTrendPoint{Date: date, Refunds: len(recs), Amount: round2(amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// maxReasonLen caps reason labels so one verbose free-text reason cannot
// blow up the legend; longer labels are truncated with an ellipsis.
const maxReasonLen = 20

// SummarizeRefundsByReason counts refunds per (truncated) reason label and
// keeps the top eight.
func SummarizeRefundsByReason(entries []domain.RefundEntry) []ReasonCount {
	counts := make(map[string]int)
	for _, e := range entries {
		reason := e.Reason
		if reason == "" {
			reason = "Other"
		}
		if len(reason) > maxReasonLen {
			reason = reason[:maxReasonLen] + "..."
		}
		counts[reason]++
	}
	out := make([]ReasonCount, 0, len(counts))
	for r, c := range counts {
		out = append(out, ReasonCount{Reason: r, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	if len(out) > 8 {
		out = out[:8]
	}
	return out
}

// OverviewRefunds computes the headline refund metrics.
func OverviewRefunds(entries []domain.RefundEntry, agents int) RefundOverview {
	ov := RefundOverview{Refunds: len(entries), Agents: agents}
	for _, e := range entries {
		ov.TotalAmount += e.Amount
	}
	ov.TotalAmount = round2(ov.TotalAmount)
	if len(entries) > 0 {
		ov.AvgAmount = round2(ov.TotalAmount / float64(len(entries)))
	}
	return ov
}

// ---- Chargebacks ----

type ChargebackGroup struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	Amount    float64 `json:"amount"`
	TopReason string  `json:"topReason,omitempty"`
}

type ChargebackMIDRow struct {
	MID       string  `json:"mid"`
	Count     int     `json:"count"`
	Payments  int     `json:"payments,omitempty"`
	CBPct     float64 `json:"cbPct,omitempty"`
	Amount    float64 `json:"amount"`
	RiskLevel string  `json:"riskLevel,omitempty"`
}

type ChargebackTrendPoint struct {
	Date        string  `json:"date"`
	Chargebacks int     `json:"chargebacks"`
	Amount      float64 `json:"amount"`
}

type ChargebackOverview struct {
	TotalChargebacks int     `json:"totalChargebacks"`
	TotalPayments    int     `json:"totalPayments"`
	CBRate           float64 `json:"cbRate"`
	RiskLevel        string  `json:"riskLevel"`
	MIDs             int     `json:"mids"`
	Products         int     `json:"products"`
}

// CBRiskLevel classifies a chargeback ratio against the fixed thresholds.
// The ratio is the raw fraction from the sheet; the thresholds are applied
// to it exactly as stored.
func CBRiskLevel(cbPct float64) string {
	switch {
	case cbPct >= cbHighRiskPct:
		return "high"
	case cbPct >= cbWarningPct:
		return "warning"
	default:
		return "ok"
	}
}

// SummarizeChargebacksByMID groups filtered details by payment method when
// any survive the date filter; otherwise it falls back to the sheet's own
// per-MID summary block (which carries no dates and so cannot be filtered),
// preserving the sheet's row order.
func SummarizeChargebacksByMID(details []domain.ChargebackDetail, summary []domain.ChargebackMIDSummary) []ChargebackMIDRow {
	if len(details) > 0 {
		groups := groupBy(details, func(d domain.ChargebackDetail) string {
			if d.PaymentMethod == "" {
				return "Unknown"
			}
			return d.PaymentMethod
		})
		out := make([]ChargebackMIDRow, 0, len(groups))
		for mid, recs := range groups {
			var amount float64
			for _, d := range recs {
				amount += d.Amount
			}
			out = append(out, ChargebackMIDRow{MID: mid, Count: len(recs), Amount: round2(amount)})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].MID < out[j].MID
		})
		return out
	}

	out := make([]ChargebackMIDRow, 0, len(summary))
	for _, m := range summary {
		if m.MID == "" {
			continue
		}
		out = append(out, ChargebackMIDRow{
			MID:       m.MID,
			Count:     m.Chargebacks,
			Payments:  m.Payments,
			CBPct:     m.CBPct,
			RiskLevel: CBRiskLevel(m.CBPct),
		})
	}
	return out
}

// SummarizeChargebacksByProduct groups details by product with the modal
// dispute reason per product.
func SummarizeChargebacksByProduct(details []domain.ChargebackDetail) []ChargebackGroup {
	groups := groupBy(details, func(d domain.ChargebackDetail) string {
		if d.Product == "" {
			return "Unknown"
		}
		return d.Product
	})
	out := make([]ChargebackGroup, 0, len(groups))
	for product, recs := range groups {
		var amount float64
		reasons := make(map[string]int)
		for _, d := range recs {
			amount += d.Amount
			if d.Reason != "" {
				reasons[d.Reason]++
			}
		}
		out = append(out, ChargebackGroup{
			Key:       product,
			Count:     len(recs),
			Amount:    round2(amount),
			TopReason: topValue(reasons),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SummarizeChargebacksByReason counts details per dispute reason.
func SummarizeChargebacksByReason(details []domain.ChargebackDetail) []ChargebackGroup {
	groups := groupBy(details, func(d domain.ChargebackDetail) string {
		if d.Reason == "" {
			return "Unknown"
		}
		return d.Reason
	})
	out := make([]ChargebackGroup, 0, len(groups))
	for reason, recs := range groups {
		out = append(out, ChargebackGroup{Key: reason, Count: len(recs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SummarizeChargebackTrend produces the time-ordered dispute series.
func SummarizeChargebackTrend(details []domain.ChargebackDetail) []ChargebackTrendPoint {
	groups := groupBy(details, func(d domain.ChargebackDetail) string { return d.Date })
	delete(groups, "")
	out := make([]ChargebackTrendPoint, 0, len(groups))
	for date, recs := range groups {
		var amount float64
		for _, d := range recs {
			amount += d.Amount
		}
		out = append(out, ChargebackTrendPoint{Date: date, Chargebacks: len(recs), Amount: round2(amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OverviewChargebacks prefers the sheet's verbatim Total/Avg row for the
// headline counts and rate, falling back to the filtered detail count when
// the sheet carried no aggregate row.
func OverviewChargebacks(details []domain.ChargebackDetail, total *domain.ChargebackMIDSummary, mids, products int) ChargebackOverview {
	ov := ChargebackOverview{
		TotalChargebacks: len(details),
		MIDs:             mids,
		Products:         products,
	}
	if total != nil {
		ov.TotalChargebacks = total.Chargebacks
		ov.TotalPayments = total.Payments
		ov.CBRate = total.CBPct
	}
	ov.RiskLevel = CBRiskLevel(ov.CBRate)
	return ov
}

// ---- Business ----

type BusinessTotals struct {
	Revenue   float64 `json:"totalRevenue"`
	Orders    float64 `json:"totalOrders"`
	Units     float64 `json:"totalUnits"`
	Refunds   float64 `json:"totalRefunds"`
	COGS      float64 `json:"totalCogs"`
	NetProfit float64 `json:"netProfit"`
	AdSpend   float64 `json:"adSpend"`
}

type BusinessGroup struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
	Units   float64 `json:"units,omitempty"`
	Profit  float64 `json:"profit"`
	AdSpend float64 `json:"adSpend,omitempty"`
	COGS    float64 `json:"cogs,omitempty"`
	Refunds float64 `json:"refunds,omitempty"`
}

type BusinessTrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
	Profit  float64 `json:"profit"`
}

// TotalBusiness sums the P&L columns over the filtered records.
func TotalBusiness(entries []domain.BusinessEntry) BusinessTotals {
	var t BusinessTotals
	for _, e := range entries {
		t.Revenue += e.Revenue
		t.Orders += e.Orders
		t.Units += e.UnitsSold
		t.Refunds += e.Refunds
		t.COGS += e.COGS
		t.NetProfit += e.NetProfit
		t.AdSpend += e.AdSpend
	}
	return t
}

// SummarizeBusinessByProduct groups P&L rows by product, highest revenue
// first.
func SummarizeBusinessByProduct(entries []domain.BusinessEntry) []BusinessGroup {
	groups := groupBy(entries, func(e domain.BusinessEntry) string {
		if e.Product == "" {
			return "Unknown"
		}
		return e.Product
	})
	out := make([]BusinessGroup, 0, len(groups))
	for product, recs := range groups {
		g := BusinessGroup{Key: product}
		for _, e := range recs {
			g.Revenue += e.Revenue
			g.Orders += e.Orders
			g.Units += e.UnitsSold
			g.Profit += e.NetProfit
			g.AdSpend += e.AdSpend
			g.COGS += e.COGS
			g.Refunds += e.Refunds
		}
		out = append(out, g)
	}
	sortBusinessGroups(out)
	return out
}

// SummarizeBusinessByStore groups P&L rows by store, highest revenue first.
func SummarizeBusinessByStore(entries []domain.BusinessEntry) []BusinessGroup {
	groups := groupBy(entries, func(e domain.BusinessEntry) string {
		if e.Store == "" {
			return "Unknown"
		}
		return e.Store
	})
	out := make([]BusinessGroup, 0, len(groups))
	for store, recs := range groups {
		g := BusinessGroup{Key: store}
		for _, e := range recs {
			g.Revenue += e.Revenue
			g.Orders += e.Orders
			g.Profit += e.NetProfit
		}
		out = append(out, g)
	}
	sortBusinessGroups(out)
	return out
}

// SummarizeBusinessTrend produces the time-ordered revenue series.
func SummarizeBusinessTrend(entries []domain.BusinessEntry) []BusinessTrendPoint {
	groups := groupBy(entries, func(e domain.BusinessEntry) string { return e.Date })
	delete(groups, "")
	out := make([]BusinessTrendPoint, 0, len(groups))
	for date, recs := range groups {
		p := BusinessTrendPoint{Date: date}
		for _, e := range recs {
			p.Revenue += e.Revenue
			p.Orders += e.Orders
			p.Profit += e.NetProfit
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func sortBusinessGroups(out []BusinessGroup) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Key < out[j].Key
	})
}
