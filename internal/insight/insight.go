// Package insight evaluates a fixed ordered list of predicate rules over a
// filtered view and renders human-readable findings.
package insight

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"mktintel/internal/filter"
)

const FallbackMessage = "Explore the dashboard for actionable insights."

type Config struct {
	// HealthyCAC is the mean-CAC threshold (currency units) below which the
	// healthy-CAC rule fires.
	HealthyCAC float64
	// TrendDays is how many summary rows the revenue-trend rule needs. The
	// comparison is the latest day against the day TrendDays rows earlier.
	TrendDays int
}

func DefaultConfig() Config {
	return Config{HealthyCAC: 20, TrendDays: 7}
}

// Rule produces zero or one message for a view. Rules are independent; any
// combination may fire in one response, in declaration order.
type Rule struct {
	Name string
	Eval func(v *filter.View, cfg Config) (string, bool)
}

func Rules() []Rule {
	return []Rule{
		{Name: "best_channel", Eval: bestChannel},
		{Name: "single_channel_roas", Eval: singleChannelROAS},
		{Name: "healthy_cac", Eval: healthyCAC},
		{Name: "revenue_trend", Eval: revenueTrend},
	}
}

// Generate runs every rule against the same view and collects the messages.
// When nothing fires the fallback message is returned alone.
func Generate(v *filter.View, cfg Config) []string {
	var out []string
	for _, r := range Rules() {
		if msg, ok := r.Eval(v, cfg); ok {
			out = append(out, msg)
		}
	}
	if len(out) == 0 {
		out = append(out, FallbackMessage)
	}
	return out
}

func bestChannel(v *filter.View, _ Config) (string, bool) {
	if v.Selection.Channel != "" || len(v.Channels) < 2 {
		return "", false
	}
	best := v.Channels[0]
	for _, ch := range v.Channels[1:] {
		if ch.ROAS > best.ROAS {
			best = ch
		}
	}
	return fmt.Sprintf("%s is currently the most efficient channel (highest ROAS: %sx).",
		best.Channel, fixed2(best.ROAS)), true
}

func singleChannelROAS(v *filter.View, _ Config) (string, bool) {
	if v.Selection.Channel == "" || len(v.Channels) != 1 {
		return "", false
	}
	ch := v.Channels[0]
	return fmt.Sprintf("The average ROAS for %s is %sx.", ch.Channel, fixed2(ch.ROAS)), true
}

func healthyCAC(v *filter.View, cfg Config) (string, bool) {
	if len(v.Summary) == 0 {
		return "", false
	}
	vals := make([]float64, 0, len(v.Summary))
	for _, row := range v.Summary {
		vals = append(vals, row.CAC)
	}
	m, err := stats.Mean(vals)
	if err != nil || m >= cfg.HealthyCAC {
		return "", false
	}
	return fmt.Sprintf("Customer acquisition cost is healthy at $%s.", fixed2(m)), true
}

func revenueTrend(v *filter.View, cfg Config) (string, bool) {
	n := len(v.Summary)
	if cfg.TrendDays <= 0 || n < cfg.TrendDays {
		return "", false
	}
	// Summary is sorted by date ascending.
	latest := v.Summary[n-1].TotalRevenue
	prior := v.Summary[n-cfg.TrendDays].TotalRevenue
	if latest <= prior {
		return "", false
	}
	return "Total revenue is trending upwards over the last week.", true
}

// fixed2 renders a metric with exactly two decimals, without float formatting
// artifacts on values like 19.999999999999996.
func fixed2(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}
