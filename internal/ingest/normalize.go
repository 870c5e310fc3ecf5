package ingest

import (
	"strings"

	"github.com/gocarina/gocsv"

	"mktintel/internal/models"
)

// Business exports and ad platform dumps disagree on header spelling. Every
// header is lowercased, trimmed and whitespace-collapsed before this alias
// table runs, so "  # of Orders " and "# of orders" both land on "orders".
var headerAliases = map[string]string{
	"# of orders":        "orders",
	"# of new orders":    "new_orders",
	"new customers":      "new_customers",
	"total revenue":      "total_revenue",
	"gross profit":       "gross_profit",
	"attributed revenue": "attributed_revenue",
	"impression":         "impressions",
}

func init() {
	gocsv.SetHeaderNormalizer(canonicalHeader)
}

func canonicalHeader(h string) string {
	h = strings.Join(strings.Fields(strings.ToLower(h)), " ")
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return strings.ReplaceAll(h, " ", "_")
}

// normalizeMarketing trims text fields and clamps counters and money to
// non-negative values. Runs before any metric computation.
func normalizeMarketing(r *models.MarketingRecord) {
	r.Campaign = strings.TrimSpace(r.Campaign)
	r.Tactic = strings.TrimSpace(r.Tactic)
	r.State = strings.TrimSpace(r.State)
	r.Impressions = max0(r.Impressions)
	r.Clicks = max0(r.Clicks)
	r.Spend = maxf(r.Spend)
	r.AttributedRevenue = maxf(r.AttributedRevenue)
}

// normalizeBusiness clamps counts and revenue. Gross profit and COGS keep
// their sign; a loss-making day is legitimate data.
func normalizeBusiness(b *models.BusinessRecord) {
	b.Orders = max0(b.Orders)
	b.NewOrders = max0(b.NewOrders)
	b.NewCustomers = max0(b.NewCustomers)
	b.TotalRevenue = maxf(b.TotalRevenue)
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
