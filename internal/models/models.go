package models

// MarketingRecord is one row of per-channel ad activity. Channel is tagged by
// the loader from the source the row came from, never read from the file.
// Numeric fields are zero-filled on load so they are never absent downstream.
type MarketingRecord struct {
	Date              Date    `csv:"date" json:"date"`
	Channel           string  `csv:"-" json:"channel"`
	Campaign          string  `csv:"campaign" json:"campaign"`
	Tactic            string  `csv:"tactic" json:"tactic"`
	State             string  `csv:"state" json:"state,omitempty"`
	Impressions       int     `csv:"impressions" json:"impressions"`
	Clicks            int     `csv:"clicks" json:"clicks"`
	Spend             float64 `csv:"spend" json:"spend"`
	AttributedRevenue float64 `csv:"attributed_revenue" json:"attributed_revenue"`

	// Row-level derived metrics, filled after normalization.
	CTR  float64 `csv:"-" json:"ctr"`
	CPC  float64 `csv:"-" json:"cpc"`
	ROAS float64 `csv:"-" json:"roas"`
}

// BusinessRecord is one row of daily business outcomes, keyed by date.
type BusinessRecord struct {
	Date         Date    `csv:"date" json:"date"`
	Orders       int     `csv:"orders" json:"orders"`
	NewOrders    int     `csv:"new_orders" json:"new_orders"`
	NewCustomers int     `csv:"new_customers" json:"new_customers"`
	TotalRevenue float64 `csv:"total_revenue" json:"total_revenue"`
	GrossProfit  float64 `csv:"gross_profit" json:"gross_profit"`
	COGS         float64 `csv:"cogs" json:"cogs"`
}

type DailyKey struct {
	Date    Date
	Channel string
}

// DailyChannelAggregate sums marketing activity per (date, channel). CTR and
// ROAS are ratio-of-sums over the group, not averages of row ratios.
type DailyChannelAggregate struct {
	Date              Date    `json:"date"`
	Channel           string  `json:"channel"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Spend             float64 `json:"spend"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	CTR               float64 `json:"ctr"`
	ROAS              float64 `json:"roas"`
}

// ChannelAggregate is the channel-comparison view. ROAS and CTR here are the
// simple mean of the channel's daily ratios, intentionally different from the
// ratio-of-sums used in DailyChannelAggregate.
type ChannelAggregate struct {
	Channel           string  `json:"channel"`
	Spend             float64 `json:"spend"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	ROAS              float64 `json:"roas"`
	CTR               float64 `json:"ctr"`
}

// SummaryRow is a BusinessRecord left-joined with that date's marketing spend
// and attributed revenue (0 when no marketing activity matched the date).
type SummaryRow struct {
	BusinessRecord
	Spend             float64 `json:"spend"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	CAC               float64 `json:"cac"`
	ROAS              float64 `json:"roas"`
	GrossMargin       float64 `json:"gross_margin"`
}

// Totals is the KPI header row over a filtered summary. ROAS and CAC are means
// of the per-day summary values.
type Totals struct {
	Orders            int     `json:"orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	Spend             float64 `json:"spend"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	ROAS              float64 `json:"roas"`
	CAC               float64 `json:"cac"`
}

// Snapshot is the canonical loaded data for a session. It is read-only after
// the loader returns it; every filter cycle derives fresh views from it.
type Snapshot struct {
	Marketing []MarketingRecord
	Business  []BusinessRecord
	Channels  []string
}
