package summary

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"ms-checkin/internal/models"
)

// DashboardDB persists the summary pivot to the dashboard table.
type DashboardDB struct {
	Bun *bun.DB
}

// ReplaceSummary clears the dashboard table and writes the given rows
// in one transaction, so readers never observe a half-written summary.
func (d *DashboardDB) ReplaceSummary(ctx context.Context, rows []models.SummaryRow) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.SummaryRow)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}
