package summary_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-checkin/internal/models"
	"ms-checkin/internal/summary"
)

func setupDashboardDB(t *testing.T) (*summary.DashboardDB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.SummaryRow)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create dashboard_summary table: %v", err)
	}

	return &summary.DashboardDB{Bun: bunDB}, bunDB
}

func TestReplaceSummaryOverwrites(t *testing.T) {
	store, bunDB := setupDashboardDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	first := []models.SummaryRow{
		{OperatorID: "staff1@example.com", Event: "Breakfast", Checkins: 2, UpdatedAt: now},
		{OperatorID: "staff2@example.com", Event: "Breakfast", Checkins: 0, UpdatedAt: now},
	}
	require.NoError(t, store.ReplaceSummary(ctx, first))

	second := []models.SummaryRow{
		{OperatorID: "staff1@example.com", Event: "Breakfast", Checkins: 3, UpdatedAt: now},
	}
	require.NoError(t, store.ReplaceSummary(ctx, second))

	var rows []models.SummaryRow
	require.NoError(t, bunDB.NewSelect().Model(&rows).Scan(ctx))
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Checkins)
}

func TestReplaceSummaryWithNoRows(t *testing.T) {
	store, bunDB := setupDashboardDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.ReplaceSummary(ctx, []models.SummaryRow{
		{OperatorID: "staff1@example.com", Event: "Gift", Checkins: 1, UpdatedAt: now},
	}))
	require.NoError(t, store.ReplaceSummary(ctx, nil))

	count, err := bunDB.NewSelect().Model((*models.SummaryRow)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
