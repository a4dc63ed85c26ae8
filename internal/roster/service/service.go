package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ms-checkin/internal/logger"
	"ms-checkin/internal/models"
)

var (
	// ErrRosterUnavailable means the roster could not be loaded or is
	// empty. The UI renders this differently from an unknown barcode.
	ErrRosterUnavailable = errors.New("roster unavailable")

	// ErrNotFound means the roster loaded fine but no attendee matches
	// the scanned barcode. Informational, not a failure.
	ErrNotFound = errors.New("barcode not recognized")
)

type RosterDBLayer interface {
	ReadRoster(ctx context.Context) ([]models.Attendee, error)
}

type Service struct {
	DB     RosterDBLayer
	Cache  *Cache
	Logger *logger.Logger
}

func NewService(db RosterDBLayer, cache *Cache, log *logger.Logger) *Service {
	return &Service{DB: db, Cache: cache, Logger: log}
}

// Roster returns the attendee roster, serving from the Redis snapshot
// when it is fresh and falling back to the database otherwise.
func (s *Service) Roster(ctx context.Context) ([]models.Attendee, error) {
	if roster, ok := s.Cache.Get(ctx); ok {
		return roster, nil
	}

	roster, err := s.DB.ReadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	if err := s.Cache.Set(ctx, roster); err != nil && s.Logger != nil {
		s.Logger.Warn("ROSTER", fmt.Sprintf("Failed to cache roster snapshot: %v", err))
	}
	return roster, nil
}

// Match resolves a raw scanned string against a roster. Both sides are
// compared with leading/trailing whitespace trimmed, case-sensitive;
// the first match wins. The returned attendee carries the normalized
// barcode, so ledger writes and duplicate checks share this single
// normalization point.
func Match(roster []models.Attendee, rawBarcode string) (*models.Attendee, bool) {
	barcode := strings.TrimSpace(rawBarcode)
	if barcode == "" {
		return nil, false
	}
	for i := range roster {
		if strings.TrimSpace(roster[i].Barcode) == barcode {
			attendee := roster[i]
			attendee.Barcode = barcode
			return &attendee, true
		}
	}
	return nil, false
}

// Resolve maps a scanned barcode to at most one attendee. An empty or
// unloadable roster is ErrRosterUnavailable; a loaded roster with no
// match is ErrNotFound.
func (s *Service) Resolve(ctx context.Context, rawBarcode string) (*models.Attendee, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: roster is empty", ErrRosterUnavailable)
	}

	attendee, ok := Match(roster, rawBarcode)
	if !ok {
		return nil, ErrNotFound
	}
	return attendee, nil
}
