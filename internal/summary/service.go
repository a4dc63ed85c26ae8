package summary

import (
	"context"
	"fmt"
	"time"

	"ms-checkin/internal/config"
	"ms-checkin/internal/logger"
	"ms-checkin/internal/models"
)

type LedgerReader interface {
	ReadLedger(ctx context.Context, ledgerID string) ([]models.CheckinRecord, error)
}

type DashboardStore interface {
	ReplaceSummary(ctx context.Context, rows []models.SummaryRow) error
}

// Service aggregates every operator's ledger into the dashboard view.
type Service struct {
	Ledgers   LedgerReader
	Dashboard DashboardStore
	Config    config.CheckinConfig
	Logger    *logger.Logger
}

func NewService(ledgers LedgerReader, dashboard DashboardStore, cfg config.CheckinConfig, log *logger.Logger) *Service {
	return &Service{Ledgers: ledgers, Dashboard: dashboard, Config: cfg, Logger: log}
}

// UserEventCount is one cell of the per-operator pivot. Every
// (operator, event) combination is present, zero-count included.
type UserEventCount struct {
	OperatorID string `json:"operator_id"`
	Event      string `json:"event"`
	Count      int    `json:"checkins"`
}

// EventTotal is the per-event sum across all operators.
type EventTotal struct {
	Event string `json:"event"`
	Total int    `json:"total"`
}

// Summary is a full recomputation over all ledgers. Nothing here is
// maintained incrementally.
type Summary struct {
	PerUserEventCounts []UserEventCount       `json:"per_user_event_counts"`
	PerEventTotals     []EventTotal           `json:"per_event_totals"`
	FlatExport         []models.CheckinRecord `json:"-"`
	FailedLedgers      []string               `json:"failed_ledgers,omitempty"`
	GeneratedAt        time.Time              `json:"generated_at"`
}

// Count returns the cell value for one (operator, event) pair.
func (s *Summary) Count(operatorID, event string) int {
	for _, c := range s.PerUserEventCounts {
		if c.OperatorID == operatorID && c.Event == event {
			return c.Count
		}
	}
	return 0
}

// Summarize reads every configured operator's ledger and recomputes
// counts, totals, and the flattened export. A ledger that fails to
// load degrades to empty for its operator and is reported in
// FailedLedgers; the rest of the summary still renders.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{GeneratedAt: time.Now()}

	ledgers := make(map[string][]models.CheckinRecord, len(s.Config.Operators))
	for _, op := range s.Config.Operators {
		records, err := s.Ledgers.ReadLedger(ctx, op.LedgerID)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Error("SUMMARY", fmt.Sprintf("Failed to read ledger %s for %s: %v", op.LedgerID, op.Email, err))
			}
			summary.FailedLedgers = append(summary.FailedLedgers, op.LedgerID)
			continue
		}
		ledgers[op.LedgerID] = records
	}

	totals := make(map[string]int, len(s.Config.Events))
	for _, op := range s.Config.Operators {
		records := ledgers[op.LedgerID]
		for _, event := range s.Config.Events {
			count := 0
			for i := range records {
				if records[i].Event == event {
					count++
				}
			}
			summary.PerUserEventCounts = append(summary.PerUserEventCounts, UserEventCount{
				OperatorID: op.Email,
				Event:      event,
				Count:      count,
			})
			totals[event] += count
		}
		summary.FlatExport = append(summary.FlatExport, records...)
	}

	for _, event := range s.Config.Events {
		summary.PerEventTotals = append(summary.PerEventTotals, EventTotal{
			Event: event,
			Total: totals[event],
		})
	}

	return summary, nil
}

// RewriteDashboard clears and rewrites the persisted dashboard table
// from an in-memory summary. Invoked separately from Summarize.
func (s *Service) RewriteDashboard(ctx context.Context, summary *Summary) error {
	if s.Dashboard == nil {
		return fmt.Errorf("no dashboard store configured")
	}

	now := time.Now()
	rows := make([]models.SummaryRow, 0, len(summary.PerUserEventCounts))
	for _, c := range summary.PerUserEventCounts {
		rows = append(rows, models.SummaryRow{
			OperatorID: c.OperatorID,
			Event:      c.Event,
			Checkins:   c.Count,
			UpdatedAt:  now,
		})
	}

	if err := s.Dashboard.ReplaceSummary(ctx, rows); err != nil {
		return fmt.Errorf("failed to rewrite dashboard: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("SUMMARY", fmt.Sprintf("Dashboard rewritten with %d rows", len(rows)))
	}
	return nil
}
