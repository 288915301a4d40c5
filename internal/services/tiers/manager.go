// Package tiers loads the commission tier table from its configured source and publishes
// it to the fee registry.
package tiers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"homefix/internal/config"
	"homefix/internal/services/commission"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownSource  = errors.New("unknown tier source")
	ErrReadOnlySource = errors.New("tier source is read-only; set TIER_SOURCE=db to edit tiers at runtime")
)

type Store interface {
	List(ctx context.Context) ([]commission.Tier, error)
	ReplaceAll(ctx context.Context, tiers []commission.Tier) error
}

type ManagerConfig struct {
	Source     string
	FilePath   string
	MinimumFee int64
}

type Manager struct {
	// mu serializes source reads/writes with the registry swap so the
	// persisted and active tables never diverge.
	mu       sync.Mutex
	registry *commission.Registry
	store    Store
	cfg      ManagerConfig
	log      *logrus.Logger
}

// NewManager loads the initial table and returns a Manager whose Registry serves it.
// A table that fails validation aborts startup.
func NewManager(ctx context.Context, cfg ManagerConfig, store Store, log *logrus.Logger) (*Manager, error) {
	m := &Manager{store: store, cfg: cfg, log: log}

	tiers, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	calc, err := commission.NewCalculator(tiers, commission.WithMinimumFee(cfg.MinimumFee))
	if err != nil {
		return nil, fmt.Errorf("invalid %s tier table: %w", cfg.Source, err)
	}
	m.registry = commission.NewRegistry(calc)
	m.report(calc)

	return m, nil
}

func (m *Manager) Registry() *commission.Registry {
	return m.registry
}

// Reload re-reads the configured source and swaps the table in.
func (m *Manager) Reload(ctx context.Context) (*commission.Calculator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tiers, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	calc, err := m.registry.Replace(tiers, commission.WithMinimumFee(m.cfg.MinimumFee))
	if err != nil {
		return nil, err
	}
	m.report(calc)
	return calc, nil
}

// Replace validates tiers, persists them, then swaps them in. Only the db source is
// writable; builtin and file tables would be restored by the next Reload.
func (m *Manager) Replace(ctx context.Context, tiers []commission.Tier) (*commission.Calculator, error) {
	if m.cfg.Source != config.TierSourceDB || m.store == nil {
		return nil, fmt.Errorf("%w (source %q)", ErrReadOnlySource, m.cfg.Source)
	}

	calc, err := commission.NewCalculator(tiers, commission.WithMinimumFee(m.cfg.MinimumFee))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.ReplaceAll(ctx, calc.Tiers()); err != nil {
		return nil, err
	}

	swapped, err := m.registry.Replace(calc.Tiers(), commission.WithMinimumFee(m.cfg.MinimumFee))
	if err != nil {
		return nil, err
	}
	m.report(swapped)
	return swapped, nil
}

func (m *Manager) load(ctx context.Context) ([]commission.Tier, error) {
	switch m.cfg.Source {
	case "", config.TierSourceBuiltin:
		return commission.DefaultTiers(), nil
	case config.TierSourceFile:
		return config.LoadTierFile(m.cfg.FilePath)
	case config.TierSourceDB:
		if m.store == nil {
			return nil, fmt.Errorf("%w: db source without a store", ErrUnknownSource)
		}
		return m.store.List(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, m.cfg.Source)
	}
}

func (m *Manager) report(calc *commission.Calculator) {
	entry := m.log.WithFields(logrus.Fields{
		"source":      m.cfg.Source,
		"tiers":       len(calc.Tiers()),
		"minimum_fee": calc.MinimumFee(),
	})
	if !calc.RatesNonIncreasing() {
		entry.Warn("commission tier rates increase with volume")
	}
	entry.Info("commission tier table active")
}
