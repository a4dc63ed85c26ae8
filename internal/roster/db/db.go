package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-checkin/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ReadRoster returns every attendee in the registration roster.
func (d *DB) ReadRoster(ctx context.Context) ([]models.Attendee, error) {
	var roster []models.Attendee
	err := d.Bun.NewSelect().
		Model(&roster).
		Order("barcode ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return roster, nil
}
