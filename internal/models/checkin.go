package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TimestampLayout is the second-precision layout used for check-in
// timestamps in API responses and CSV exports.
const TimestampLayout = "2006-01-02 15:04:05"

// CheckinRecord is one append-only row in an operator's ledger.
// Records are never updated or deleted; `id` preserves insertion order
// within a ledger.
type CheckinRecord struct {
	bun.BaseModel `bun:"table:checkins"`

	ID         int64     `bun:"id,pk,autoincrement" json:"-"`
	RecordID   string    `bun:"record_id,notnull,unique" json:"record_id"`
	LedgerID   string    `bun:"ledger_id,notnull" json:"ledger_id"`
	Barcode    string    `bun:"barcode,notnull" json:"barcode"`
	ArnCode    string    `bun:"arn_code" json:"arn_code"`
	Name       string    `bun:"name" json:"name"`
	Mobile     string    `bun:"mobile" json:"mobile"`
	Event      string    `bun:"event,notnull" json:"event"`
	Timestamp  time.Time `bun:"timestamp,notnull" json:"timestamp"`
	OperatorID string    `bun:"operator_id,notnull" json:"operator_id"`
}

// FormattedTimestamp renders the check-in time at second precision.
func (r *CheckinRecord) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}
