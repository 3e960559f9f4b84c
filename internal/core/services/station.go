package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

// Ensure Station implements the interface.
var _ driving.StationService = (*Station)(nil)

// Station owns the one cashbox of a run. It is constructed explicitly at
// process start and handed to every adapter that needs the cashbox.
type Station struct {
	mu        sync.RWMutex
	settings  domain.StationSettings
	newStores driven.StoresFactory
	cashbox   *CashboxService
}

// NewStation validates settings and opens the station's cashbox.
func NewStation(ctx context.Context, settings domain.StationSettings, newStores driven.StoresFactory) (*Station, error) {
	if newStores == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("station settings: %w", err)
	}

	s := &Station{
		settings:  settings,
		newStores: newStores,
	}
	cashbox, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	s.cashbox = cashbox
	logger.Info("Station %q opened with one cashbox", settings.Name)
	return s, nil
}

// open builds a cashbox over fresh stores and seeds default tariffs if configured.
func (s *Station) open(ctx context.Context) (*CashboxService, error) {
	cashbox := NewCashboxService(s.newStores(), s.settings.Pricing)
	if !s.settings.SeedDefaultTariffs {
		return cashbox, nil
	}
	for _, t := range s.settings.DefaultTariffs {
		if err := cashbox.AddTariff(ctx, t.Destination, t.Price); err != nil {
			return nil, fmt.Errorf("seed tariff %s: %w", t.Destination, err)
		}
	}
	logger.Debug("Seeded %d default tariffs", len(s.settings.DefaultTariffs))
	return cashbox, nil
}

// Cashbox returns the current cashbox.
func (s *Station) Cashbox() driving.CashboxService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cashbox
}

// Info describes the station and summarises its cashbox.
func (s *Station) Info(ctx context.Context) (domain.StationInfo, error) {
	s.mu.RLock()
	settings := s.settings
	cashbox := s.cashbox
	s.mu.RUnlock()

	summary, err := cashbox.Statistics(ctx)
	if err != nil {
		return domain.StationInfo{}, err
	}
	return domain.StationInfo{
		Name:         settings.Name,
		Address:      settings.Address,
		Currency:     settings.Pricing.Currency,
		CashboxCount: 1,
		Summary:      summary,
	}, nil
}

// Reset closes the current cashbox and opens a fresh one from the current settings.
// On failure the previous cashbox stays in place.
func (s *Station) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cashbox, err := s.open(ctx)
	if err != nil {
		return err
	}
	s.cashbox = cashbox
	logger.Info("Station %q reset: new cashbox opened", s.settings.Name)
	return nil
}

// ApplySettings replaces the station settings. The running cashbox picks up
// the new price bounds immediately; default tariffs apply from the next Reset.
func (s *Station) ApplySettings(settings domain.StationSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("station settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.cashbox.SetPricing(settings.Pricing)
	logger.Debug("Settings applied: price range %s to %s",
		settings.Pricing.Format(settings.Pricing.MinPrice), settings.Pricing.Format(settings.Pricing.MaxPrice))
	return nil
}

// Settings returns the settings the station is running with.
func (s *Station) Settings() domain.StationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
