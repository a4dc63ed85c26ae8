package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"ms-checkin/internal/config"
	"ms-checkin/internal/logger"
	"ms-checkin/internal/models"
	"ms-checkin/internal/utils"
)

var (
	// ErrAlreadyCheckedIn marks a duplicate-suppressed check-in. It is
	// an idempotent no-op, not a failure.
	ErrAlreadyCheckedIn = errors.New("already checked in for this event")

	// ErrUnknownEvent rejects event names outside the configured list.
	ErrUnknownEvent = errors.New("unknown event")
)

type LedgerDBLayer interface {
	ReadLedger(ctx context.Context, ledgerID string) ([]models.CheckinRecord, error)
	AppendRecord(ctx context.Context, record *models.CheckinRecord) error
}

// EventPublisher streams recorded check-ins to interested consumers.
// Publishing is best-effort and never fails a check-in.
type EventPublisher interface {
	PublishCheckinRecorded(record models.CheckinRecord) error
}

type Service struct {
	DB        LedgerDBLayer
	Publisher EventPublisher
	Config    config.CheckinConfig
	Logger    *logger.Logger
}

func NewService(db LedgerDBLayer, publisher EventPublisher, cfg config.CheckinConfig, log *logger.Logger) *Service {
	return &Service{DB: db, Publisher: publisher, Config: cfg, Logger: log}
}

// IsDuplicate reports whether the ledger already holds a record for
// (barcode, event). The barcode must arrive already normalized by the
// roster lookup; no re-trim happens here so both paths share a single
// normalization point.
func IsDuplicate(records []models.CheckinRecord, barcode, event string) bool {
	for i := range records {
		if records[i].Barcode == barcode && records[i].Event == event {
			return true
		}
	}
	return false
}

// CheckIn appends one record to the operator's ledger after a fresh
// read-before-write duplicate check. The window between the check and
// the append is unsynchronized; each operator owns their ledger
// exclusively, so the realistic race is a double submit, which the UI
// suppresses by disabling the control until re-render.
func (s *Service) CheckIn(ctx context.Context, operator config.Operator, attendee models.Attendee, event string, now time.Time) (*models.CheckinRecord, error) {
	if !s.Config.ValidEvent(event) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}

	records, err := s.DB.ReadLedger(ctx, operator.LedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", operator.LedgerID, err)
	}

	if IsDuplicate(records, attendee.Barcode, event) {
		return nil, ErrAlreadyCheckedIn
	}

	record := &models.CheckinRecord{
		RecordID:   uuid.New().String(),
		LedgerID:   operator.LedgerID,
		Barcode:    attendee.Barcode,
		ArnCode:    attendee.ArnCode,
		Name:       attendee.Name,
		Mobile:     attendee.Mobile,
		Event:      event,
		Timestamp:  utils.TruncateToSecond(now),
		OperatorID: operator.Email,
	}

	if err := s.DB.AppendRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append check-in to ledger %s: %w", operator.LedgerID, err)
	}

	if s.Logger != nil {
		s.Logger.LogCheckin(operator.LedgerID, record.Barcode, event, "recorded")
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishCheckinRecorded(*record); err != nil && s.Logger != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish check-in %s: %v", record.RecordID, err))
		}
	}

	return record, nil
}

// Recent orders records reverse-chronologically, ties broken by
// insertion order with the most recent insertion first, truncated to
// limit. Input must be in ledger insertion order.
func Recent(records []models.CheckinRecord, limit int) []models.CheckinRecord {
	out := make([]models.CheckinRecord, len(records))
	for i := range records {
		out[len(records)-1-i] = records[i]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentForLedger re-reads a ledger and returns its latest check-ins.
// A limit of zero falls back to the configured default.
func (s *Service) RecentForLedger(ctx context.Context, ledgerID string, limit int) ([]models.CheckinRecord, error) {
	records, err := s.DB.ReadLedger(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", ledgerID, err)
	}
	if limit <= 0 {
		limit = s.Config.RecentLimit
	}
	return Recent(records, limit), nil
}
