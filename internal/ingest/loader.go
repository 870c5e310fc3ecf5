// Package ingest reads the per-channel marketing sources and the business
// outcomes source into one normalized snapshot.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gocarina/gocsv"

	"mktintel/internal/metrics"
	"mktintel/internal/models"
)

var marketingColumns = []string{
	"date", "impressions", "clicks", "spend", "attributed_revenue", "campaign", "tactic",
}

var businessColumns = []string{
	"date", "orders", "new_orders", "new_customers", "total_revenue", "gross_profit", "cogs",
}

type Loader struct {
	channels []ChannelSource
	business Source
	log      *slog.Logger
}

func New(channels []ChannelSource, business Source, log *slog.Logger) *Loader {
	return &Loader{channels: channels, business: business, log: log}
}

// Load reads every source, tags marketing rows with their channel, normalizes
// both tables and fills row-level metrics. Any unreadable source or missing
// column aborts the whole load; there is no partial snapshot.
func (l *Loader) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	for _, cs := range l.channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := decode[models.MarketingRecord](cs.Source, marketingColumns)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].Channel = cs.Channel
			normalizeMarketing(&rows[i])
			metrics.Marketing(&rows[i])
		}
		snap.Marketing = append(snap.Marketing, rows...)
		snap.Channels = append(snap.Channels, cs.Channel)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	business, err := decode[models.BusinessRecord](l.business, businessColumns)
	if err != nil {
		return nil, err
	}
	for i := range business {
		normalizeBusiness(&business[i])
	}
	snap.Business = business

	l.log.Info("sources loaded",
		slog.Int("channels", len(l.channels)),
		slog.Int("marketing_rows", len(snap.Marketing)),
		slog.Int("business_rows", len(snap.Business)))
	return snap, nil
}

// Fingerprint combines every source's fingerprint. Any change to any source
// produces a different value.
func (l *Loader) Fingerprint() (string, error) {
	parts := make([]string, 0, len(l.channels)+1)
	for _, cs := range l.channels {
		fp, err := cs.Source.Fingerprint()
		if err != nil {
			return "", err
		}
		parts = append(parts, fp)
	}
	fp, err := l.business.Fingerprint()
	if err != nil {
		return "", err
	}
	parts = append(parts, fp)
	return strings.Join(parts, ";"), nil
}

func decode[T any](src Source, required []string) ([]T, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", src.Name(), ErrSourceUnavailable, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", src.Name(), ErrSourceUnavailable, err)
	}
	if err := checkColumns(src.Name(), data, required); err != nil {
		return nil, err
	}
	var rows []T
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%s: decoding csv: %w", src.Name(), err)
	}
	return rows, nil
}

// checkColumns verifies the required canonical columns are present, so a
// renamed or dropped column fails loudly instead of silently zero-filling.
func checkColumns(name string, data []byte, required []string) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("%s: empty or unreadable header: %w", name, ErrSchemaMismatch)
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[canonicalHeader(h)] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("%s: missing column %q: %w", name, col, ErrSchemaMismatch)
		}
	}
	return nil
}
