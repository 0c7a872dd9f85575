package models

// Daily summary modes select which date-key field the closing report buckets
// on, and which statuses count toward the cash figure.
const (
	SummaryModeCompleted = "completed" // completed_date_key, status in {ready, paid}
	SummaryModePaid      = "paid"      // paid_date_key, status paid
	SummaryModeCreated   = "created"   // created_date_key, every order (audit view)
)

// DailySummary is the cash-closing report for one business day.
// Total and NumOrders cover only the cash-eligible subset for the chosen
// mode; Orders always carries the full fetched set so the cashier can audit
// individual tickets against the figure.
type DailySummary struct {
	Date      string  `json:"date"` // YYYY-MM-DD in the business time zone
	Mode      string  `json:"mode"`
	Total     float64 `json:"total"`
	NumOrders int     `json:"num_orders"`
	Orders    []Order `json:"orders"`
}
