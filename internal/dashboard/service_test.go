package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mktintel/internal/filter"
	"mktintel/internal/ingest"
	"mktintel/internal/insight"
	"mktintel/internal/models"
	"mktintel/internal/store"
)

const marketingHeader = "date,tactic,state,campaign,impression,clicks,spend,attributed revenue\n"
const businessHeader = "date,# of orders,# of new orders,new customers,total revenue,gross profit,COGS\n"

func buildService(t *testing.T, facebook, google, business string) *Service {
	t.Helper()
	loader := ingest.New([]ingest.ChannelSource{
		{Channel: "Facebook", Source: ingest.NewStaticSource("Facebook", []byte(facebook))},
		{Channel: "Google", Source: ingest.NewStaticSource("Google", []byte(google))},
	}, ingest.NewStaticSource("business", []byte(business)), slog.Default())
	return New(store.NewCache(loader), slog.Default(), insight.DefaultConfig())
}

func smallService(t *testing.T) *Service {
	t.Helper()
	fb := marketingHeader +
		"2025-03-01,Retargeting,NY,Spring Sale,100,10,50,100\n" +
		"2025-03-02,Prospecting,CA,Brand Push,0,0,0,0\n"
	gg := marketingHeader +
		"2025-03-01,Prospecting,NY,Search,200,20,80,160\n"
	biz := businessHeader +
		"2025-03-01,120,40,30,5000,2000,3000\n" +
		"2025-03-02,80,20,10,3000,1000,2000\n"
	return buildService(t, fb, gg, biz)
}

func TestQueryProducesFullReport(t *testing.T) {
	rep, err := smallService(t).Query(context.Background(), Query{})
	require.NoError(t, err)

	require.Len(t, rep.Marketing, 3)
	require.Len(t, rep.Daily, 3)
	require.Len(t, rep.Channels, 2)
	require.Len(t, rep.Summary, 2)
	require.NotEmpty(t, rep.Insights)

	require.Equal(t, 200, rep.Totals.Orders)
	require.InDelta(t, 8000, rep.Totals.TotalRevenue, 1e-9)
	require.InDelta(t, 130, rep.Totals.Spend, 1e-9)
	require.InDelta(t, 260, rep.Totals.AttributedRevenue, 1e-9)
}

func TestQueryDetailIsMostRecentFirst(t *testing.T) {
	rep, err := smallService(t).Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, models.NewDate(2025, time.March, 2), rep.Marketing[0].Date)
}

func TestQueryDetailIsCapped(t *testing.T) {
	var fb strings.Builder
	fb.WriteString(marketingHeader)
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&fb, "2025-03-%02d,t,NY,c,10,1,5,10\n", i%28+1)
	}
	svc := buildService(t, fb.String(), marketingHeader, businessHeader+"2025-03-01,1,1,1,10,5,5\n")

	rep, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, rep.Marketing, detailLimit)
}

func TestQueryCampaignDrilldownNeedsChannelSelection(t *testing.T) {
	svc := smallService(t)

	withChannel, err := svc.Query(context.Background(), Query{
		Selection: filter.Selection{Channel: "Facebook"},
		Campaign:  "Spring Sale",
	})
	require.NoError(t, err)
	require.Len(t, withChannel.Marketing, 1)
	require.Equal(t, "Spring Sale", withChannel.Marketing[0].Campaign)

	// Without a channel selection the campaign param is ignored.
	withoutChannel, err := svc.Query(context.Background(), Query{Campaign: "Spring Sale"})
	require.NoError(t, err)
	require.Len(t, withoutChannel.Marketing, 3)
}

func TestQuerySingleChannelShiftsSummaryKPIs(t *testing.T) {
	svc := smallService(t)
	rep, err := svc.Query(context.Background(), Query{
		Selection: filter.Selection{Channel: "Google"},
	})
	require.NoError(t, err)
	require.InDelta(t, 80, rep.Totals.Spend, 1e-9)
	require.InDelta(t, 160, rep.Totals.AttributedRevenue, 1e-9)
}

func TestQueryEmptyRangeYieldsEmptyTablesAndFallbackInsight(t *testing.T) {
	from := models.NewDate(2030, time.January, 1)
	to := models.NewDate(2030, time.January, 31)
	rep, err := smallService(t).Query(context.Background(), Query{
		Selection: filter.Selection{From: &from, To: &to},
	})
	require.NoError(t, err)
	require.Empty(t, rep.Marketing)
	require.Empty(t, rep.Daily)
	require.Empty(t, rep.Channels)
	require.Empty(t, rep.Summary)
	require.Equal(t, []string{insight.FallbackMessage}, rep.Insights)
	require.Zero(t, rep.Totals)
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("channel", "Facebook")
	v.Set("campaign", " Spring Sale ")
	q := ParseQuery(v)
	require.Equal(t, "Facebook", q.Channel)
	require.Equal(t, "Spring Sale", q.Campaign)
}
