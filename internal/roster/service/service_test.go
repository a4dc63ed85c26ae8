package roster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-checkin/internal/models"
	roster "ms-checkin/internal/roster/service"
)

// MockRosterDB is a mock implementation of the RosterDBLayer interface
type MockRosterDB struct {
	roster        []models.Attendee
	errorToReturn error
}

func (m *MockRosterDB) ReadRoster(_ context.Context) ([]models.Attendee, error) {
	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	return m.roster, nil
}

func sampleRoster() []models.Attendee {
	return []models.Attendee{
		{Barcode: "ABC123", Name: "Alice", ArnCode: "ARN-1", Mobile: "111", City: "Chennai"},
		{Barcode: "DEF456", Name: "Bob", ArnCode: "ARN-2", Mobile: "222", City: "Madurai"},
		{Barcode: " GHI789 ", Name: "Carol", ArnCode: "ARN-3", Mobile: "333", City: "Salem"},
	}
}

func TestResolveExactMatch(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{roster: sampleRoster()}, nil, nil)

	attendee, err := svc.Resolve(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", attendee.Name)
	assert.Equal(t, "ABC123", attendee.Barcode)
}

func TestResolveTrimsInput(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{roster: sampleRoster()}, nil, nil)

	trimmed, err := svc.Resolve(context.Background(), "ABC123")
	require.NoError(t, err)

	padded, err := svc.Resolve(context.Background(), "  ABC123  ")
	require.NoError(t, err)

	assert.Equal(t, trimmed, padded)
}

func TestResolveTrimsRosterBarcode(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{roster: sampleRoster()}, nil, nil)

	attendee, err := svc.Resolve(context.Background(), "GHI789")
	require.NoError(t, err)
	assert.Equal(t, "Carol", attendee.Name)
	// The resolved attendee carries the normalized barcode.
	assert.Equal(t, "GHI789", attendee.Barcode)
}

func TestResolveNotFound(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{roster: sampleRoster()}, nil, nil)

	_, err := svc.Resolve(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestResolveEmptyRoster(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{roster: nil}, nil, nil)

	_, err := svc.Resolve(context.Background(), "ABC123")
	// An empty roster is a load failure, distinguishable from an
	// unrecognized barcode.
	assert.ErrorIs(t, err, roster.ErrRosterUnavailable)
	assert.NotErrorIs(t, err, roster.ErrNotFound)
}

func TestResolveRosterReadFailure(t *testing.T) {
	svc := roster.NewService(&MockRosterDB{errorToReturn: errors.New("connection refused")}, nil, nil)

	_, err := svc.Resolve(context.Background(), "ABC123")
	assert.ErrorIs(t, err, roster.ErrRosterUnavailable)
}

func TestMatchFirstWins(t *testing.T) {
	duplicated := []models.Attendee{
		{Barcode: "X1", Name: "First"},
		{Barcode: "X1", Name: "Second"},
	}

	attendee, ok := roster.Match(duplicated, "X1")
	require.True(t, ok)
	assert.Equal(t, "First", attendee.Name)
}

func TestMatchEmptyInput(t *testing.T) {
	_, ok := roster.Match(sampleRoster(), "   ")
	assert.False(t, ok)
}

func TestMatchIsCaseSensitive(t *testing.T) {
	_, ok := roster.Match(sampleRoster(), "abc123")
	assert.False(t, ok)
}
