// Package volume derives a contractor's trailing monthly transaction volume.
package volume

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Window is the trailing period that counts toward monthly volume.
const Window = 30 * 24 * time.Hour

type Ledger interface {
	SumVolumeSince(ctx context.Context, contractorID uuid.UUID, since time.Time) (int64, error)
}

// Cache stores volumes under a version that InvalidateMonthlyVolume bumps.
type Cache interface {
	MonthlyVolumeVersion(ctx context.Context, contractorID uuid.UUID) (int64, error)
	GetMonthlyVolume(ctx context.Context, contractorID uuid.UUID, version int64) (int64, bool, error)
	SetMonthlyVolume(ctx context.Context, contractorID uuid.UUID, version, volume int64) error
	InvalidateMonthlyVolume(ctx context.Context, contractorID uuid.UUID) error
}

type Service struct {
	ledger Ledger
	cache  Cache
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(ledger Ledger, cache Cache, log *logrus.Logger) *Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if log == nil {
		panic("logger is required")
	}
	return &Service{
		ledger: ledger,
		cache:  cache,
		log:    log,
		now:    time.Now,
	}
}

// MonthlyVolume returns the contractor's volume over the trailing Window in cents.
// Cache failures are logged and fall through to the ledger.
func (s *Service) MonthlyVolume(ctx context.Context, contractorID uuid.UUID) (int64, error) {
	entry := s.log.WithField("contractor_id", contractorID)

	useCache := s.cache != nil
	var version int64
	if useCache {
		var err error
		version, err = s.cache.MonthlyVolumeVersion(ctx, contractorID)
		if err != nil {
			entry.WithError(err).Warn("monthly volume cache version read failed")
			useCache = false
		}
	}

	if useCache {
		v, found, err := s.cache.GetMonthlyVolume(ctx, contractorID, version)
		switch {
		case err != nil:
			entry.WithError(err).Warn("monthly volume cache read failed")
		case found:
			return v, nil
		}
	}

	total, err := s.ledger.SumVolumeSince(ctx, contractorID, s.now().Add(-Window))
	if err != nil {
		return 0, fmt.Errorf("failed to load monthly volume: %w", err)
	}

	// Written under the version read before the ledger sum; an invalidation in
	// between leaves this entry unreachable.
	if useCache {
		if err := s.cache.SetMonthlyVolume(ctx, contractorID, version, total); err != nil {
			entry.WithError(err).Warn("monthly volume cache write failed")
		}
	}
	return total, nil
}

// Invalidate bumps the cache version so the next read hits the ledger.
func (s *Service) Invalidate(ctx context.Context, contractorID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMonthlyVolume(ctx, contractorID); err != nil {
		s.log.WithError(err).WithField("contractor_id", contractorID).Warn("monthly volume cache invalidation failed")
	}
}
