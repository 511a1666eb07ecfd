// Package services coordinates fetching, parsing, and serving the
// dashboard snapshot.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"opsdash/internal/config"
	"opsdash/internal/dataprocessing"
	"opsdash/internal/errors"
	"opsdash/internal/infrastructure"
	"opsdash/pkg/contracts/domain"
)

// Section names accepted by the records and summary accessors.
const (
	SectionQA           = "qa"
	SectionProductivity = "productivity"
	SectionCsat         = "csat"
	SectionRefunds      = "refunds"
	SectionChargebacks  = "chargebacks"
	SectionBusiness     = "business"
)

// Sections lists every dashboard section in display order.
var Sections = []string{
	SectionQA, SectionProductivity, SectionCsat,
	SectionRefunds, SectionChargebacks, SectionBusiness,
}

// Fetcher retrieves one published sheet tab as raw CSV text. A failed
// fetch yields "".
type Fetcher interface {
	Fetch(ctx context.Context, gid string) string
}

// Broadcaster receives a notification when a reload completes.
type Broadcaster interface {
	BroadcastDataUpdate(sections []string, loadedAt time.Time)
}

// Snapshot is one immutable parse of all six sources. Handlers read a
// snapshot without locking; reloads swap in a fresh one.
type Snapshot struct {
	QA           []domain.QAEntry
	Productivity []domain.ProductivityEntry
	Csat         []domain.CsatEntry
	Refunds      []domain.RefundEntry
	Chargebacks  domain.ChargebackSheet
	Business     []domain.BusinessEntry

	Dates    []string
	LoadedAt time.Time
}

// DashboardService owns the current snapshot and the reload pipeline.
type DashboardService struct {
	fetcher Fetcher
	gids    config.SheetGIDs
	hub     Broadcaster
	logger  *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewDashboardService creates a dashboard service. hub may be nil when no
// live clients need notifying (tests, the export CLI).
func NewDashboardService(fetcher Fetcher, gids config.SheetGIDs, hub Broadcaster, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &DashboardService{
		fetcher: fetcher,
		gids:    gids,
		hub:     hub,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// Reload fetches all six sources concurrently, parses them, and swaps in
// a new snapshot. Individual source failures degrade to empty sections;
// Reload itself fails only when the context is cancelled.
func (s *DashboardService) Reload(ctx context.Context) error {
	start := time.Now()

	var (
		qa   []domain.QAEntry
		prod []domain.ProductivityEntry
		csat []domain.CsatEntry
		ref  []domain.RefundEntry
		cb   domain.ChargebackSheet
		biz  []domain.BusinessEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionQA, s.gids.QA)
		qa = dataprocessing.MapQA(raw)
		return nil
	})
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionProductivity, s.gids.Productivity)
		prod = dataprocessing.MapProductivity(raw)
		return nil
	})
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionCsat, s.gids.Csat)
		csat = dataprocessing.MapCsat(raw)
		return nil
	})
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionRefunds, s.gids.Refunds)
		ref = dataprocessing.MapRefunds(raw)
		return nil
	})
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionChargebacks, s.gids.Chargebacks)
		cb = dataprocessing.ExtractChargebacks(raw)
		return nil
	})
	g.Go(func() error {
		raw := s.fetchSource(gctx, SectionBusiness, s.gids.Business)
		biz = dataprocessing.MapBusiness(raw)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := &Snapshot{
		QA:           qa,
		Productivity: prod,
		Csat:         csat,
		Refunds:      ref,
		Chargebacks:  cb,
		Business:     biz,
		LoadedAt:     time.Now(),
	}
	snap.Dates = collectSnapshotDates(snap)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	infrastructure.RecordsParsed.WithLabelValues(SectionQA).Set(float64(len(qa)))
	infrastructure.RecordsParsed.WithLabelValues(SectionProductivity).Set(float64(len(prod)))
	infrastructure.RecordsParsed.WithLabelValues(SectionCsat).Set(float64(len(csat)))
	infrastructure.RecordsParsed.WithLabelValues(SectionRefunds).Set(float64(len(ref)))
	infrastructure.RecordsParsed.WithLabelValues(SectionChargebacks).Set(float64(len(cb.Details)))
	infrastructure.RecordsParsed.WithLabelValues(SectionBusiness).Set(float64(len(biz)))
	infrastructure.ReloadDuration.Observe(time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "snapshot reloaded",
		slog.Int("qa", len(qa)),
		slog.Int("productivity", len(prod)),
		slog.Int("csat", len(csat)),
		slog.Int("refunds", len(ref)),
		slog.Int("chargeback_details", len(cb.Details)),
		slog.Int("business", len(biz)),
		slog.Duration("took", time.Since(start)),
	)

	if s.hub != nil {
		s.hub.BroadcastDataUpdate(Sections, snap.LoadedAt)
	}
	return nil
}

func (s *DashboardService) fetchSource(ctx context.Context, name, gid string) string {
	if gid == "" {
		return ""
	}
	raw := s.fetcher.Fetch(ctx, gid)
	infrastructure.ObserveFetch(name, raw != "")
	return raw
}

func collectSnapshotDates(snap *Snapshot) []string {
	var dates []string
	dates = append(dates, dataprocessing.CollectDates(snap.QA)...)
	dates = append(dates, dataprocessing.CollectDates(snap.Productivity)...)
	dates = append(dates, dataprocessing.CollectDates(snap.Csat)...)
	dates = append(dates, dataprocessing.CollectDates(snap.Refunds)...)
	dates = append(dates, dataprocessing.CollectDates(snap.Chargebacks.Details)...)
	dates = append(dates, dataprocessing.CollectDates(snap.Business)...)
	return dataprocessing.DistinctDates(dates)
}

// Snapshot returns the current snapshot, or nil before the first reload.
func (s *DashboardService) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// DatesResponse lists distinct canonical dates and quick-select ranges.
type DatesResponse struct {
	Dates       []string                    `json:"dates"`
	QuickRanges []dataprocessing.QuickRange `json:"quickRanges"`
	LoadedAt    time.Time                   `json:"loadedAt"`
}

// Dates returns the distinct dates and quick ranges of the snapshot.
func (s *DashboardService) Dates() (*DatesResponse, *errors.APIError) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, errors.ErrNoData
	}
	return &DatesResponse{
		Dates:       snap.Dates,
		QuickRanges: dataprocessing.QuickRanges(snap.Dates),
		LoadedAt:    snap.LoadedAt,
	}, nil
}

// Records returns the filtered records of a section. Chargebacks return
// the full three-region sheet with details filtered.
func (s *DashboardService) Records(section string, iv domain.DateInterval) (interface{}, *errors.APIError) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, errors.ErrNoData
	}

	switch section {
	case SectionQA:
		return dataprocessing.FilterByDate(snap.QA, iv), nil
	case SectionProductivity:
		return dataprocessing.FilterByDate(snap.Productivity, iv), nil
	case SectionCsat:
		return dataprocessing.FilterByDate(snap.Csat, iv), nil
	case SectionRefunds:
		return dataprocessing.FilterByDate(snap.Refunds, iv), nil
	case SectionChargebacks:
		return domain.ChargebackSheet{
			Summary: snap.Chargebacks.Summary,
			Total:   snap.Chargebacks.Total,
			Details: dataprocessing.FilterByDate(snap.Chargebacks.Details, iv),
		}, nil
	case SectionBusiness:
		return dataprocessing.FilterByDate(snap.Business, iv), nil
	}
	return nil, errors.ErrUnknownSection
}

// QASummary is the full summary payload for the QA section.
type QASummary struct {
	Overview dataprocessing.QAOverview       `json:"overview"`
	ByAgent  []dataprocessing.QAAgentSummary `json:"byAgent"`
	Trend    []dataprocessing.QATrendPoint   `json:"trend"`
	Grades   []dataprocessing.GradeCount     `json:"grades"`
}

// ProductivitySummary is the full summary payload for productivity.
type ProductivitySummary struct {
	Overview dataprocessing.ProductivityOverview       `json:"overview"`
	ByAgent  []dataprocessing.ProductivityAgentSummary `json:"byAgent"`
	Trend    []dataprocessing.ProductivityTrendPoint   `json:"trend"`
}

// CsatSummary is the full summary payload for CSAT.
type CsatSummary struct {
	Overview dataprocessing.CsatOverview       `json:"overview"`
	ByAgent  []dataprocessing.CsatAgentSummary `json:"byAgent"`
	Trend    []dataprocessing.CsatTrendPoint   `json:"trend"`
}

// RefundSummary is the full summary payload for refunds.
type RefundSummary struct {
	Overview dataprocessing.RefundOverview       `json:"overview"`
	ByAgent  []dataprocessing.RefundAgentSummary `json:"byAgent"`
	ByReason []dataprocessing.ReasonCount        `json:"byReason"`
	Trend    []dataprocessing.RefundTrendPoint   `json:"trend"`
}

// ChargebackSummary is the full summary payload for chargebacks.
type ChargebackSummary struct {
	Overview  dataprocessing.ChargebackOverview    `json:"overview"`
	ByMID     []dataprocessing.ChargebackMIDRow     `json:"byMid"`
	ByProduct []dataprocessing.ChargebackGroup      `json:"byProduct"`
	ByReason  []dataprocessing.ChargebackGroup      `json:"byReason"`
	Trend     []dataprocessing.ChargebackTrendPoint `json:"trend"`
}

// BusinessSummary is the full summary payload for the P&L section.
type BusinessSummary struct {
	Totals    dataprocessing.BusinessTotals        `json:"totals"`
	ByProduct []dataprocessing.BusinessGroup      `json:"byProduct"`
	ByStore   []dataprocessing.BusinessGroup      `json:"byStore"`
	Trend     []dataprocessing.BusinessTrendPoint `json:"trend"`
}

// Summary returns the aggregated views of a section over the interval.
func (s *DashboardService) Summary(section string, iv domain.DateInterval) (interface{}, *errors.APIError) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, errors.ErrNoData
	}

	switch section {
	case SectionQA:
		entries := dataprocessing.FilterByDate(snap.QA, iv)
		return QASummary{
			Overview: dataprocessing.OverviewQA(entries),
			ByAgent:  dataprocessing.SummarizeQAByAgent(entries),
			Trend:    dataprocessing.SummarizeQATrend(entries),
			Grades:   dataprocessing.SummarizeGrades(entries),
		}, nil

	case SectionProductivity:
		entries := dataprocessing.FilterByDate(snap.Productivity, iv)
		byAgent := dataprocessing.SummarizeProductivityByAgent(entries)
		return ProductivitySummary{
			Overview: dataprocessing.OverviewProductivity(byAgent),
			ByAgent:  byAgent,
			Trend:    dataprocessing.SummarizeProductivityTrend(entries),
		}, nil

	case SectionCsat:
		entries := dataprocessing.FilterByDate(snap.Csat, iv)
		return CsatSummary{
			Overview: dataprocessing.OverviewCsat(entries),
			ByAgent:  dataprocessing.SummarizeCsatByAgent(entries),
			Trend:    dataprocessing.SummarizeCsatTrend(entries),
		}, nil

	case SectionRefunds:
		entries := dataprocessing.FilterByDate(snap.Refunds, iv)
		byAgent := dataprocessing.SummarizeRefundsByAgent(entries)
		return RefundSummary{
			Overview: dataprocessing.OverviewRefunds(entries, len(byAgent)),
			ByAgent:  byAgent,
			ByReason: dataprocessing.SummarizeRefundsByReason(entries),
			Trend:    dataprocessing.SummarizeRefundTrend(entries),
		}, nil

	case SectionChargebacks:
		details := dataprocessing.FilterByDate(snap.Chargebacks.Details, iv)
		byMID := dataprocessing.SummarizeChargebacksByMID(details, snap.Chargebacks.Summary)
		byProduct := dataprocessing.SummarizeChargebacksByProduct(details)
		return ChargebackSummary{
			Overview:  dataprocessing.OverviewChargebacks(details, snap.Chargebacks.Total, len(byMID), len(byProduct)),
			ByMID:     byMID,
			ByProduct: byProduct,
			ByReason:  dataprocessing.SummarizeChargebacksByReason(details),
			Trend:     dataprocessing.SummarizeChargebackTrend(details),
		}, nil

	case SectionBusiness:
		entries := dataprocessing.FilterByDate(snap.Business, iv)
		return BusinessSummary{
			Totals:    dataprocessing.TotalBusiness(entries),
			ByProduct: dataprocessing.SummarizeBusinessByProduct(entries),
			ByStore:   dataprocessing.SummarizeBusinessByStore(entries),
			Trend:     dataprocessing.SummarizeBusinessTrend(entries),
		}, nil
	}
	return nil, errors.ErrUnknownSection
}
