package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-checkin/internal/ledger/db"
	"ms-checkin/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.CheckinRecord)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create checkins table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func newRecord(ledgerID, barcode, event string, ts time.Time) *models.CheckinRecord {
	return &models.CheckinRecord{
		RecordID:   uuid.New().String(),
		LedgerID:   ledgerID,
		Barcode:    barcode,
		Name:       "Test Attendee",
		Event:      event,
		Timestamp:  ts,
		OperatorID: "staff1@example.com",
	}
}

func TestAppendAndReadLedger(t *testing.T) {
	ledgerDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, ledgerDB.AppendRecord(ctx, newRecord("Ledger1", "X1", "Breakfast", now)))
	require.NoError(t, ledgerDB.AppendRecord(ctx, newRecord("Ledger1", "X2", "Breakfast", now.Add(time.Minute))))
	require.NoError(t, ledgerDB.AppendRecord(ctx, newRecord("Ledger1", "X1", "Lunch", now.Add(2*time.Minute))))

	records, err := ledgerDB.ReadLedger(ctx, "Ledger1")
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Insertion order must be preserved.
	assert.Equal(t, "X1", records[0].Barcode)
	assert.Equal(t, "Breakfast", records[0].Event)
	assert.Equal(t, "X2", records[1].Barcode)
	assert.Equal(t, "Lunch", records[2].Event)
}

func TestReadLedgerFiltersByLedger(t *testing.T) {
	ledgerDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	require.NoError(t, ledgerDB.AppendRecord(ctx, newRecord("Ledger1", "X1", "Breakfast", now)))
	require.NoError(t, ledgerDB.AppendRecord(ctx, newRecord("Ledger2", "X2", "Breakfast", now)))

	records, err := ledgerDB.ReadLedger(ctx, "Ledger2")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "X2", records[0].Barcode)
}

func TestReadEmptyLedger(t *testing.T) {
	ledgerDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	records, err := ledgerDB.ReadLedger(context.Background(), "Ledger1")
	require.NoError(t, err)
	assert.Empty(t, records)
}
