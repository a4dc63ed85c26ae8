package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SummaryRow is one persisted cell of the dashboard summary table,
// rewritten in full whenever the dashboard is published.
type SummaryRow struct {
	bun.BaseModel `bun:"table:dashboard_summary"`

	ID         int64     `bun:"id,pk,autoincrement" json:"-"`
	OperatorID string    `bun:"operator_id,notnull" json:"operator_id"`
	Event      string    `bun:"event,notnull" json:"event"`
	Checkins   int       `bun:"checkins,notnull" json:"checkins"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
