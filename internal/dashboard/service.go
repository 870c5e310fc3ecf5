// Package dashboard orchestrates one filter-and-recompute cycle: cached
// snapshot in, filtered tables plus KPI totals and insights out. This is the
// whole surface the presentation layer talks to.
package dashboard

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"mktintel/internal/filter"
	"mktintel/internal/insight"
	"mktintel/internal/models"
	"mktintel/internal/store"
)

// detailLimit caps the marketing detail table, most recent rows first.
const detailLimit = 50

type Service struct {
	cache *store.Cache
	log   *slog.Logger
	cfg   insight.Config
}

func New(cache *store.Cache, log *slog.Logger, cfg insight.Config) *Service {
	return &Service{cache: cache, log: log, cfg: cfg}
}

// Query is a Selection plus the campaign drilldown, which only narrows the
// detail table and only when a single channel is selected.
type Query struct {
	filter.Selection
	Campaign string
}

func ParseQuery(v url.Values) Query {
	return Query{
		Selection: filter.ParseSelection(v),
		Campaign:  strings.TrimSpace(v.Get("campaign")),
	}
}

type Report struct {
	Totals    models.Totals                  `json:"totals"`
	Marketing []models.MarketingRecord       `json:"marketing"`
	Daily     []models.DailyChannelAggregate `json:"daily"`
	Channels  []models.ChannelAggregate      `json:"channels"`
	Summary   []models.SummaryRow            `json:"summary"`
	Insights  []string                       `json:"insights"`
}

func (s *Service) Query(ctx context.Context, q Query) (*Report, error) {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := filter.Apply(snap, q.Selection)
	report := &Report{
		Totals:    totals(view.Summary),
		Marketing: detail(view, q.Campaign),
		Daily:     view.Daily,
		Channels:  view.Channels,
		Summary:   view.Summary,
		Insights:  insight.Generate(view, s.cfg),
	}
	s.log.Debug("dashboard query",
		slog.String("channel", view.Selection.Channel),
		slog.Int("marketing_rows", len(view.Marketing)),
		slog.Int("summary_rows", len(view.Summary)))
	return report, nil
}

// Reload invalidates the snapshot cache and loads fresh.
func (s *Service) Reload(ctx context.Context) (*models.Snapshot, error) {
	s.cache.Invalidate()
	return s.cache.Snapshot(ctx)
}

func detail(view *filter.View, campaign string) []models.MarketingRecord {
	rows := make([]models.MarketingRecord, 0, len(view.Marketing))
	for _, r := range view.Marketing {
		if campaign != "" && view.Selection.Channel != "" && !strings.EqualFold(r.Campaign, campaign) {
			continue
		}
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[j].Date.Before(rows[i].Date.Time) })
	if len(rows) > detailLimit {
		rows = rows[:detailLimit]
	}
	return rows
}

// totals is the KPI header: sums of the additive summary columns, means of
// the per-day ROAS and CAC.
func totals(summary []models.SummaryRow) models.Totals {
	var t models.Totals
	if len(summary) == 0 {
		return t
	}
	roas := make([]float64, 0, len(summary))
	cac := make([]float64, 0, len(summary))
	for _, row := range summary {
		t.Orders += row.Orders
		t.TotalRevenue += row.TotalRevenue
		t.Spend += row.Spend
		t.AttributedRevenue += row.AttributedRevenue
		roas = append(roas, row.ROAS)
		cac = append(cac, row.CAC)
	}
	t.ROAS, _ = stats.Mean(roas)
	t.CAC, _ = stats.Mean(cac)
	return t
}
