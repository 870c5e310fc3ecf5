// Package aggregate groups marketing detail into the daily, channel and
// summary tables. Grouping is by key maps, so results depend only on the
// grouping keys, never on input row order.
package aggregate

import (
	"sort"

	"github.com/montanaflynn/stats"

	"mktintel/internal/metrics"
	"mktintel/internal/models"
)

// Daily groups marketing records by (date, channel), sums the additive
// fields, and recomputes CTR/ROAS as ratio-of-sums over the group.
func Daily(records []models.MarketingRecord) []models.DailyChannelAggregate {
	groups := make(map[models.DailyKey]*models.DailyChannelAggregate)
	for _, r := range records {
		k := models.DailyKey{Date: r.Date, Channel: r.Channel}
		agg, ok := groups[k]
		if !ok {
			agg = &models.DailyChannelAggregate{Date: k.Date, Channel: k.Channel}
			groups[k] = agg
		}
		agg.Impressions += r.Impressions
		agg.Clicks += r.Clicks
		agg.Spend += r.Spend
		agg.AttributedRevenue += r.AttributedRevenue
	}

	out := make([]models.DailyChannelAggregate, 0, len(groups))
	for _, agg := range groups {
		agg.CTR = metrics.SafeDiv(float64(agg.Clicks), float64(agg.Impressions))
		agg.ROAS = metrics.SafeDiv(agg.AttributedRevenue, agg.Spend)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// ByChannel collapses daily aggregates into one row per channel for the
// channel-comparison view. Spend and revenue are summed; ROAS and CTR are the
// simple mean of the channel's daily ratios. That deviates from the
// ratio-of-sums used in Daily and is kept that way on purpose, so a
// low-volume day weighs the same as a high-volume one in the comparison.
func ByChannel(daily []models.DailyChannelAggregate) []models.ChannelAggregate {
	type group struct {
		agg  models.ChannelAggregate
		roas []float64
		ctr  []float64
	}
	groups := make(map[string]*group)
	for _, d := range daily {
		g, ok := groups[d.Channel]
		if !ok {
			g = &group{agg: models.ChannelAggregate{Channel: d.Channel}}
			groups[d.Channel] = g
		}
		g.agg.Spend += d.Spend
		g.agg.AttributedRevenue += d.AttributedRevenue
		g.roas = append(g.roas, d.ROAS)
		g.ctr = append(g.ctr, d.CTR)
	}

	out := make([]models.ChannelAggregate, 0, len(groups))
	for _, g := range groups {
		g.agg.ROAS = mean(g.roas)
		g.agg.CTR = mean(g.ctr)
		out = append(out, g.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}

// BuildSummary collapses the daily aggregate by date and left-joins the
// date-level spend/revenue totals onto the business records. Dates with no
// marketing activity get 0 for both, then summary metrics run on each row.
func BuildSummary(business []models.BusinessRecord, daily []models.DailyChannelAggregate) []models.SummaryRow {
	totals := dateTotals(daily)
	out := make([]models.SummaryRow, 0, len(business))
	for _, b := range business {
		row := models.SummaryRow{BusinessRecord: b}
		if t, ok := totals[b.Date]; ok {
			row.Spend = t.spend
			row.AttributedRevenue = t.revenue
		}
		metrics.Summary(&row)
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

type spendRevenue struct {
	spend   float64
	revenue float64
}

// dateTotals is the left side of the summary join: marketing spend and
// attributed revenue summed per date across whatever channels are present in
// the daily aggregate. Missing dates simply have no entry; the join fills 0.
func dateTotals(daily []models.DailyChannelAggregate) map[models.Date]spendRevenue {
	totals := make(map[models.Date]spendRevenue, len(daily))
	for _, d := range daily {
		t := totals[d.Date]
		t.spend += d.Spend
		t.revenue += d.AttributedRevenue
		totals[d.Date] = t
	}
	return totals
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m, err := stats.Mean(vals)
	if err != nil {
		return 0
	}
	return m
}
