// Package metrics holds the derived-metric formulas. Everything here is a
// pure function over a single record or a single joined row.
package metrics

import "mktintel/internal/models"

// SafeDiv divides num by den, treating a zero denominator as a signal that the
// metric has no meaningful value: the result is 0, never an error, Inf or NaN.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Marketing fills CTR, CPC and ROAS on a single marketing record.
func Marketing(r *models.MarketingRecord) {
	r.CTR = SafeDiv(float64(r.Clicks), float64(r.Impressions))
	r.CPC = SafeDiv(r.Spend, float64(r.Clicks))
	r.ROAS = SafeDiv(r.AttributedRevenue, r.Spend)
}

// Summary fills CAC, ROAS and Gross Margin on a joined summary row.
func Summary(row *models.SummaryRow) {
	row.CAC = SafeDiv(row.Spend, float64(row.NewCustomers))
	row.ROAS = SafeDiv(row.AttributedRevenue, row.Spend)
	row.GrossMargin = SafeDiv(row.GrossProfit, row.TotalRevenue)
}
