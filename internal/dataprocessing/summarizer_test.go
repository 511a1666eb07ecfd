package dataprocessing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdash/pkg/contracts/domain"
)

func TestSummarizeQAByAgent(t *testing.T) {
	entries := []domain.QAEntry{
		{Date: "2024-01-05", Agent: "Ana", Score: 80, Grade: "B+", Violation: "No"},
		{Date: "2024-01-10", Agent: "Ana", Score: 90, Grade: "A", Violation: "No"},
		{Date: "2024-01-05", Agent: "Bruno", Score: 65, Grade: "C", Violation: "Yes"},
	}
	agents := SummarizeQAByAgent(entries)
	require.Len(t, agents, 2)

	// Descending by average score.
	assert.Equal(t, "Ana", agents[0].Agent)
	assert.Equal(t, 85.0, agents[0].AvgScore)
	assert.Equal(t, 2, agents[0].Evaluations)
	assert.Equal(t, 0, agents[0].Violations)

	assert.Equal(t, "Bruno", agents[1].Agent)
	assert.Equal(t, 1, agents[1].Violations)
	assert.Equal(t, "C", agents[1].TopGrade)
}

func TestSummarizeQADeterminism(t *testing.T) {
	entries := []domain.QAEntry{
		{Date: "2024-01-05", Agent: "Ana", Score: 80, Grade: "B"},
		{Date: "2024-01-06", Agent: "Bruno", Score: 80, Grade: "B"},
		{Date: "2024-01-07", Agent: "Carla", Score: 80, Grade: "B"},
		{Date: "2024-01-08", Agent: "Ana", Score: 70, Grade: "C"},
	}
	want := SummarizeQAByAgent(entries)
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.QAEntry(nil), entries...)
		rand.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, SummarizeQAByAgent(shuffled))
	}
}

func TestSummarizeQATrendOrdering(t *testing.T) {
	entries := []domain.QAEntry{
		{Date: "2024-01-10", Agent: "Ana", Score: 90},
		{Date: "2024-01-05", Agent: "Ana", Score: 80},
		{Date: "", Agent: "Bruno", Score: 10}, // dateless: excluded from trend
	}
	trend := SummarizeQATrend(entries)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01-05", trend[0].Date)
	assert.Equal(t, 80.0, trend[0].AvgScore)
	assert.Equal(t, "2024-01-10", trend[1].Date)
}

func TestOverviewQA(t *testing.T) {
	entries := []domain.QAEntry{
		{Agent: "Ana", Score: 80, Violation: "No"},
		{Agent: "Bruno", Score: 60, Violation: "Yes"},
	}
	ov := OverviewQA(entries)
	assert.Equal(t, 2, ov.Evaluations)
	assert.Equal(t, 70.0, ov.AvgScore)
	assert.Equal(t, 50, ov.PassRate) // 80 passes, 60 does not
	assert.Equal(t, 1, ov.Violations)

	// Zero records never divide.
	assert.Equal(t, QAOverview{}, OverviewQA(nil))
}

func TestQAEndToEndFilterThenAverage(t *testing.T) {
	raw := "Date,Agent Name,Final Score,Grade\n" +
		"2024-01-05,Ana,80,B+\n" +
		"2024-01-10,Ana,90,A\n"
	entries := MapQA(raw)
	require.Len(t, entries, 2)

	narrow := FilterByDate(entries, domain.DateInterval{Start: "2024-01-05", End: "2024-01-05"})
	agents := SummarizeQAByAgent(narrow)
	require.Len(t, agents, 1)
	assert.Equal(t, 80.0, agents[0].AvgScore)

	wide := FilterByDate(entries, domain.DateInterval{Start: "2024-01-01", End: "2024-01-31"})
	agents = SummarizeQAByAgent(wide)
	require.Len(t, agents, 1)
	assert.Equal(t, 85.0, agents[0].AvgScore)
}

func TestSummarizeProductivityByAgent(t *testing.T) {
	entries := []domain.ProductivityEntry{
		{Date: "2024-01-05", Agent: "Ana", TicketsHandled: 24, HoursWorked: 8},
		{Date: "2024-01-06", Agent: "Ana", TicketsHandled: 16, HoursWorked: 8},
		{Date: "2024-01-05", Agent: "Bruno", TicketsHandled: 10, HoursWorked: 0},
	}
	agents := SummarizeProductivityByAgent(entries)
	require.Len(t, agents, 2)
	assert.Equal(t, "Ana", agents[0].Agent)
	assert.Equal(t, 40, agents[0].TicketsHandled)
	assert.Equal(t, 2.5, agents[0].TicketsPerHour) // recomputed from sums
	assert.Equal(t, 2, agents[0].Days)
	assert.Equal(t, 0.0, agents[1].TicketsPerHour) // zero hours never divides

	ov := OverviewProductivity(agents)
	assert.Equal(t, 50, ov.TotalTickets)
	assert.Equal(t, 2, ov.Agents)
}

func TestSummarizeCsatByAgent(t *testing.T) {
	entries := []domain.CsatEntry{
		{Date: "2024-01-05", Agent: "Ana", Score: 5},
		{Date: "2024-01-06", Agent: "Ana", Score: 4},
		{Date: "2024-01-07", Agent: "Ana", Score: 1},
		{Date: "2024-01-05", Agent: "Bruno", Score: 3},
	}
	agents := SummarizeCsatByAgent(entries)
	require.Len(t, agents, 2)
	assert.Equal(t, "Ana", agents[0].Agent)
	assert.Equal(t, 3.33, agents[0].AvgRating)
	assert.Equal(t, 1, agents[0].FiveStar)
	assert.Equal(t, 1, agents[0].OneStar)
	assert.Equal(t, 67, agents[0].PositiveRate)

	ov := OverviewCsat(entries)
	assert.Equal(t, 4, ov.Responses)
	assert.Equal(t, 25, ov.FiveStarRate)
	assert.Equal(t, 50, ov.PositiveRate)
	assert.Equal(t, CsatOverview{}, OverviewCsat(nil))
}

func TestSummarizeRefunds(t *testing.T) {
	entries := []domain.RefundEntry{
		{Date: "2024-01-05", Agent: "Ana", Amount: 50, Reason: "Item damaged"},
		{Date: "2024-01-05", Agent: "Ana", Amount: 30, Reason: "Item damaged"},
		{Date: "2024-01-06", Agent: "Bruno", Amount: 20, Reason: ""},
	}
	agents := SummarizeRefundsByAgent(entries)
	require.Len(t, agents, 2)
	assert.Equal(t, "Ana", agents[0].Agent)
	assert.Equal(t, 80.0, agents[0].TotalAmount)
	assert.Equal(t, 40.0, agents[0].AvgAmount)

	reasons := SummarizeRefundsByReason(entries)
	require.Len(t, reasons, 2)
	assert.Equal(t, "Item damaged", reasons[0].Reason)
	assert.Equal(t, "Other", reasons[1].Reason) // empty reason bucketed

	long := []domain.RefundEntry{{Agent: "Ana", Reason: "Customer changed their mind after delivery"}}
	truncated := SummarizeRefundsByReason(long)
	assert.Equal(t, "Customer changed the...", truncated[0].Reason)
}

func TestCBRiskLevel(t *testing.T) {
	assert.Equal(t, "high", CBRiskLevel(0.01))
	assert.Equal(t, "warning", CBRiskLevel(0.005))
	assert.Equal(t, "ok", CBRiskLevel(0.0049))
}

func TestSummarizeChargebacksByMID(t *testing.T) {
	details := []domain.ChargebackDetail{
		{Date: "2024-01-05", PaymentMethod: "MID-A", Amount: 50},
		{Date: "2024-01-06", PaymentMethod: "MID-A", Amount: 30},
		{Date: "2024-01-06", PaymentMethod: "", Amount: 10},
	}
	rows := SummarizeChargebacksByMID(details, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "MID-A", rows[0].MID)
	assert.Equal(t, 80.0, rows[0].Amount)
	assert.Equal(t, "Unknown", rows[1].MID)

	// With no filtered details the sheet's summary block is used verbatim.
	summary := []domain.ChargebackMIDSummary{
		{MID: "MID-B", Chargebacks: 3, Payments: 600, CBPct: 0.005},
		{MID: "", Chargebacks: 1},
	}
	rows = SummarizeChargebacksByMID(nil, summary)
	require.Len(t, rows, 1)
	assert.Equal(t, "MID-B", rows[0].MID)
	assert.Equal(t, 600, rows[0].Payments)
	assert.Equal(t, "warning", rows[0].RiskLevel)
}

func TestSummarizeChargebacksByProduct(t *testing.T) {
	details := []domain.ChargebackDetail{
		{Product: "Widget", Reason: "Fraud", Amount: 50},
		{Product: "Widget", Reason: "Fraud", Amount: 25},
		{Product: "Widget", Reason: "Not received", Amount: 10},
		{Product: "", Reason: "Fraud", Amount: 5},
	}
	groups := SummarizeChargebacksByProduct(details)
	require.Len(t, groups, 2)
	assert.Equal(t, "Widget", groups[0].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, 85.0, groups[0].Amount)
	assert.Equal(t, "Fraud", groups[0].TopReason)
	assert.Equal(t, "Unknown", groups[1].Key)
}

func TestOverviewChargebacks(t *testing.T) {
	total := &domain.ChargebackMIDSummary{MID: "Total/Avg", Chargebacks: 10, Payments: 2000, CBPct: 0.005}
	ov := OverviewChargebacks(nil, total, 2, 3)
	assert.Equal(t, 10, ov.TotalChargebacks) // verbatim from the sheet, not recomputed
	assert.Equal(t, 2000, ov.TotalPayments)
	assert.Equal(t, "warning", ov.RiskLevel)

	details := []domain.ChargebackDetail{{CaseID: "CB-1"}, {CaseID: "CB-2"}}
	ov = OverviewChargebacks(details, nil, 0, 1)
	assert.Equal(t, 2, ov.TotalChargebacks)
	assert.Equal(t, "ok", ov.RiskLevel)
}

func TestBusinessSummaries(t *testing.T) {
	entries := []domain.BusinessEntry{
		{Date: "2024-01-05", Store: "EU", Product: "Widget", Revenue: 1000, Orders: 9, UnitsSold: 10, NetProfit: 550, COGS: 300, AdSpend: 100, Refunds: 50},
		{Date: "2024-01-06", Store: "EU", Product: "Gadget", Revenue: 400, Orders: 4, UnitsSold: 4, NetProfit: 100, COGS: 200, AdSpend: 50, Refunds: 0},
		{Date: "2024-01-06", Store: "US", Product: "Widget", Revenue: 700, Orders: 6, UnitsSold: 7, NetProfit: 300, COGS: 250, AdSpend: 80, Refunds: 20},
	}

	totals := TotalBusiness(entries)
	assert.Equal(t, 2100.0, totals.Revenue)
	assert.Equal(t, 950.0, totals.NetProfit)
	assert.Equal(t, 19.0, totals.Orders)

	byProduct := SummarizeBusinessByProduct(entries)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "Widget", byProduct[0].Key)
	assert.Equal(t, 1700.0, byProduct[0].Revenue)

	byStore := SummarizeBusinessByStore(entries)
	require.Len(t, byStore, 2)
	assert.Equal(t, "EU", byStore[0].Key)

	trend := SummarizeBusinessTrend(entries)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01-05", trend[0].Date)
	assert.Equal(t, 1100.0, trend[1].Revenue)
}

func TestTopValueTieBreaksLexically(t *testing.T) {
	assert.Equal(t, "A", topValue(map[string]int{"B": 2, "A": 2}))
	assert.Equal(t, "-", topValue(nil))
}
