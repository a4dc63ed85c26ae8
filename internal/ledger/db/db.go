package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-checkin/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ReadLedger returns every record in one operator's ledger in insertion
// order. Callers re-read immediately before a duplicate check; ledger
// reads are never cached.
func (d *DB) ReadLedger(ctx context.Context, ledgerID string) ([]models.CheckinRecord, error) {
	var records []models.CheckinRecord
	err := d.Bun.NewSelect().
		Model(&records).
		Where("ledger_id = ?", ledgerID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AppendRecord adds one row to a ledger. Rows are never updated or
// deleted afterwards.
func (d *DB) AppendRecord(ctx context.Context, record *models.CheckinRecord) error {
	_, err := d.Bun.NewInsert().Model(record).Exec(ctx)
	return err
}
