package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mktintel/internal/filter"
	"mktintel/internal/models"
)

func day(d int) models.Date { return models.NewDate(2025, time.March, d) }

func summaryWithCAC(cacs ...float64) []models.SummaryRow {
	rows := make([]models.SummaryRow, 0, len(cacs))
	for i, c := range cacs {
		rows = append(rows, models.SummaryRow{
			BusinessRecord: models.BusinessRecord{Date: day(i + 1)},
			CAC:            c,
		})
	}
	return rows
}

func summaryWithRevenue(revenues ...float64) []models.SummaryRow {
	rows := make([]models.SummaryRow, 0, len(revenues))
	for i, r := range revenues {
		rows = append(rows, models.SummaryRow{
			BusinessRecord: models.BusinessRecord{Date: day(i + 1), TotalRevenue: r},
			CAC:            100, // keep the CAC rule quiet
		})
	}
	return rows
}

func TestBestChannelFiresOnAllChannelsView(t *testing.T) {
	view := &filter.View{
		Channels: []models.ChannelAggregate{
			{Channel: "Facebook", ROAS: 1.0},
			{Channel: "Google", ROAS: 2.0},
			{Channel: "TikTok", ROAS: 1.5},
		},
	}
	msgs := Generate(view, DefaultConfig())
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "Google")
	require.Contains(t, msgs[0], "2.00x")
	require.Contains(t, msgs[0], "most efficient")
}

func TestBestChannelNeedsMoreThanOneChannel(t *testing.T) {
	view := &filter.View{
		Channels: []models.ChannelAggregate{{Channel: "Facebook", ROAS: 2.0}},
	}
	msgs := Generate(view, DefaultConfig())
	require.Equal(t, []string{FallbackMessage}, msgs)
}

func TestSingleChannelReportsItsMeanROAS(t *testing.T) {
	view := &filter.View{
		Selection: filter.Selection{Channel: "TikTok"},
		Channels:  []models.ChannelAggregate{{Channel: "TikTok", ROAS: 1.5}},
	}
	msgs := Generate(view, DefaultConfig())
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "TikTok")
	require.Contains(t, msgs[0], "1.50x")
}

func TestHealthyCACFiresBelowThreshold(t *testing.T) {
	view := &filter.View{Summary: summaryWithCAC(10, 20)} // mean 15
	msgs := Generate(view, DefaultConfig())
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "$15.00")
}

func TestHealthyCACSilentAtOrAboveThreshold(t *testing.T) {
	view := &filter.View{Summary: summaryWithCAC(20, 30)} // mean 25
	msgs := Generate(view, DefaultConfig())
	require.Equal(t, []string{FallbackMessage}, msgs)
}

func TestRevenueTrendNeedsSevenDays(t *testing.T) {
	view := &filter.View{Summary: summaryWithRevenue(1, 2, 3, 4, 5, 6)}
	msgs := Generate(view, DefaultConfig())
	require.Equal(t, []string{FallbackMessage}, msgs)
}

func TestRevenueTrendFiresOnStrictIncrease(t *testing.T) {
	view := &filter.View{Summary: summaryWithRevenue(100, 1, 1, 1, 1, 1, 200)}
	msgs := Generate(view, DefaultConfig())
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "trending upwards")
}

func TestRevenueTrendSilentOnFlatRevenue(t *testing.T) {
	view := &filter.View{Summary: summaryWithRevenue(100, 1, 1, 1, 1, 1, 100)}
	msgs := Generate(view, DefaultConfig())
	require.Equal(t, []string{FallbackMessage}, msgs)
}

func TestRulesCombineInDeclarationOrder(t *testing.T) {
	view := &filter.View{
		Channels: []models.ChannelAggregate{
			{Channel: "Facebook", ROAS: 1.0},
			{Channel: "Google", ROAS: 2.0},
		},
		Summary: summaryWithCAC(10, 20),
	}
	msgs := Generate(view, DefaultConfig())
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[0], "most efficient")
	require.Contains(t, msgs[1], "healthy")
}

func TestEmptyViewYieldsFallbackOnly(t *testing.T) {
	msgs := Generate(&filter.View{}, DefaultConfig())
	require.Equal(t, []string{FallbackMessage}, msgs)
}
