// Package domain defines the typed records produced by the ingestion
// pipeline. Records are immutable once mapped and are replaced wholesale
// on every reload; nothing in the application mutates them in place.
package domain

// A date field holds a canonical YYYY-MM-DD string when normalization
// succeeded, the cleaned source text when it did not (lexical fallback),
// or "" when the source cell was empty.

// QAEntry is one quality-assurance evaluation of an agent.
type QAEntry struct {
	Date               string  `json:"date"`
	Agent              string  `json:"agent"`
	Score              float64 `json:"score"`
	Grade              string  `json:"grade"`
	SoftSkills         float64 `json:"softSkills"`
	IssueUnderstanding float64 `json:"issueUnderstanding"`
	ProductProcess     float64 `json:"productProcess"`
	ToolsUtilization   float64 `json:"toolsUtilization"`
	Violation          string  `json:"violation"`
}

// ProductivityEntry is one day of ticket-handling output for an agent.
type ProductivityEntry struct {
	Date           string  `json:"date"`
	Agent          string  `json:"agent"`
	TicketsHandled float64 `json:"ticketsHandled"`
	TicketsPerHour float64 `json:"ticketsPerHour"`
	HoursWorked    float64 `json:"hoursWorked"`
}

// CsatEntry is one customer-satisfaction response, scored 1..5.
type CsatEntry struct {
	Date  string  `json:"date"`
	Agent string  `json:"agent"`
	Score float64 `json:"score"`
}

// RefundEntry is one refund processed by an agent.
type RefundEntry struct {
	Date   string  `json:"date"`
	Agent  string  `json:"agent"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// ChargebackMIDSummary is one row of the per-merchant summary block on the
// chargebacks sheet. CBPct is carried verbatim from the source as a raw
// decimal fraction; no display scaling is applied anywhere.
type ChargebackMIDSummary struct {
	MID         string  `json:"mid"`
	Chargebacks int     `json:"chargebacks"`
	Payments    int     `json:"payments"`
	CBPct       float64 `json:"cbPct"`
}

// ChargebackDetail is one disputed transaction from the detail block of the
// chargebacks sheet. Date is the normalized form of FilingDate.
type ChargebackDetail struct {
	CaseID        string  `json:"caseId"`
	FilingDate    string  `json:"filingDate"`
	Date          string  `json:"date"`
	TransactionID string  `json:"transactionId"`
	Reason        string  `json:"reason"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
	OrderID       string  `json:"orderId"`
	SKU           string  `json:"sku"`
	Product       string  `json:"product"`
	Country       string  `json:"country"`
}

// ChargebackSheet is the three-region result of extracting the chargebacks
// source: the per-MID summary rows, the sheet's own Total/Avg row carried
// through verbatim (nil when absent), and the case-level details.
type ChargebackSheet struct {
	Summary []ChargebackMIDSummary `json:"midSummary"`
	Total   *ChargebackMIDSummary  `json:"midTotal"`
	Details []ChargebackDetail     `json:"details"`
}

// BusinessEntry is one day of P&L figures for a store/product pair.
type BusinessEntry struct {
	Date      string  `json:"date"`
	Store     string  `json:"store"`
	Product   string  `json:"product"`
	Revenue   float64 `json:"revenue"`
	UnitsSold float64 `json:"unitsSold"`
	Refunds   float64 `json:"refunds"`
	COGS      float64 `json:"cogs"`
	AdSpend   float64 `json:"adSpend"`
	NetProfit float64 `json:"netProfit"`
	Orders    float64 `json:"orders"`
}

// DateKey implementations satisfy Dated so the generic range filter and
// trend grouping work across all record variants.

func (e QAEntry) DateKey() string           { return e.Date }
func (e ProductivityEntry) DateKey() string { return e.Date }
func (e CsatEntry) DateKey() string         { return e.Date }
func (e RefundEntry) DateKey() string       { return e.Date }
func (e ChargebackDetail) DateKey() string  { return e.Date }
func (e BusinessEntry) DateKey() string     { return e.Date }

// Dated is satisfied by every record variant that carries an optional
// canonical date field.
type Dated interface {
	DateKey() string
}

// DateInterval is an inclusive [Start, End] pair of canonical YYYY-MM-DD
// strings. An empty Start or End disables filtering on that side entirely.
type DateInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Unbounded reports whether the interval performs no filtering at all.
func (iv DateInterval) Unbounded() bool {
	return iv.Start == "" || iv.End == ""
}

// Contains reports whether the canonical date d falls inside the interval.
// Dateless records (d == "") always pass. Comparison is lexical, which
// matches chronological order for fixed-width YYYY-MM-DD strings.
func (iv DateInterval) Contains(d string) bool {
	if iv.Unbounded() || d == "" {
		return true
	}
	return d >= iv.Start && d <= iv.End
}
