// Package filter applies a date interval and an optional channel selection to
// a snapshot and recomputes every derived table from the filtered base rows.
// The snapshot itself is never mutated.
package filter

import (
	"net/url"
	"strings"

	"mktintel/internal/aggregate"
	"mktintel/internal/models"
)

// Selection is the only externally driven input: an inclusive [From, To] date
// interval (nil bound = unbounded) and an optional single channel (empty =
// all channels). From after To is a legitimate empty-result selection, not an
// error.
type Selection struct {
	From    *models.Date
	To      *models.Date
	Channel string
}

// ParseSelection reads from/to/channel query parameters. Unparseable dates
// are dropped, which degrades to "no date filtering" on that bound; "all" is
// the same as no channel.
func ParseSelection(v url.Values) Selection {
	sel := Selection{Channel: strings.TrimSpace(v.Get("channel"))}
	if strings.EqualFold(sel.Channel, "all") {
		sel.Channel = ""
	}
	if d, err := models.ParseDate(v.Get("from")); err == nil {
		sel.From = &d
	}
	if d, err := models.ParseDate(v.Get("to")); err == nil {
		sel.To = &d
	}
	return sel
}

// View holds the filtered base rows and every table derived from them. Daily,
// Channels and Summary are always recomputed from the filtered Marketing and
// Business rows, so a channel selection restricts the summary join input too.
type View struct {
	Selection Selection
	Marketing []models.MarketingRecord
	Business  []models.BusinessRecord
	Daily     []models.DailyChannelAggregate
	Channels  []models.ChannelAggregate
	Summary   []models.SummaryRow
}

func Apply(snap *models.Snapshot, sel Selection) *View {
	sel = sel.normalize(snap.Channels)

	mkt := make([]models.MarketingRecord, 0, len(snap.Marketing))
	for _, r := range snap.Marketing {
		if !sel.matchDate(r.Date) {
			continue
		}
		if sel.Channel != "" && r.Channel != sel.Channel {
			continue
		}
		mkt = append(mkt, r)
	}

	biz := make([]models.BusinessRecord, 0, len(snap.Business))
	for _, b := range snap.Business {
		if sel.matchDate(b.Date) {
			biz = append(biz, b)
		}
	}

	daily := aggregate.Daily(mkt)
	return &View{
		Selection: sel,
		Marketing: mkt,
		Business:  biz,
		Daily:     daily,
		Channels:  aggregate.ByChannel(daily),
		Summary:   aggregate.BuildSummary(biz, daily),
	}
}

// normalize resolves the channel selector against the known channel set. An
// unrecognized channel degrades to all-channels rather than failing the
// filter cycle.
func (s Selection) normalize(known []string) Selection {
	if s.Channel == "" {
		return s
	}
	for _, ch := range known {
		if strings.EqualFold(ch, s.Channel) {
			s.Channel = ch
			return s
		}
	}
	s.Channel = ""
	return s
}

func (s Selection) matchDate(d models.Date) bool {
	if s.From != nil && d.Before(s.From.Time) {
		return false
	}
	if s.To != nil && d.After(s.To.Time) {
		return false
	}
	return true
}
