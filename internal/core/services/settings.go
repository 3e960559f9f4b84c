package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStationName    = "station.name"
	keyStationAddress = "station.address"
	keyCurrency       = "pricing.currency"
	keyMinPrice       = "pricing.min_price"
	keyMaxPrice       = "pricing.max_price"
	keySeedTariffs    = "tariffs.seed_defaults"
	keyTariffPrefix   = "tariffs."
)

// SettingsService manages station settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current station settings. Missing keys fall back to defaults.
func (s *SettingsService) Get() (*domain.StationSettings, error) {
	defaults := domain.DefaultStationSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.StationSettings{
		Name:    s.getString(keyStationName, defaults.Name),
		Address: s.getString(keyStationAddress, defaults.Address),
		Pricing: domain.PricingSettings{
			Currency: s.getString(keyCurrency, defaults.Pricing.Currency),
			MinPrice: s.getFloat(keyMinPrice, defaults.Pricing.MinPrice),
			MaxPrice: s.getFloat(keyMaxPrice, defaults.Pricing.MaxPrice),
		},
		SeedDefaultTariffs: s.getBool(keySeedTariffs, defaults.SeedDefaultTariffs),
	}

	for _, t := range defaults.DefaultTariffs {
		settings.DefaultTariffs = append(settings.DefaultTariffs, domain.Tariff{
			Destination: t.Destination,
			Price:       s.getFloat(tariffKey(t.Destination), t.Price),
		})
	}

	return settings, nil
}

// Save validates and persists station settings.
func (s *SettingsService) Save(settings *domain.StationSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStationName, settings.Name},
		{keyStationAddress, settings.Address},
		{keyCurrency, settings.Pricing.Currency},
		{keyMinPrice, settings.Pricing.MinPrice},
		{keyMaxPrice, settings.Pricing.MaxPrice},
		{keySeedTariffs, settings.SeedDefaultTariffs},
	}
	for _, t := range settings.DefaultTariffs {
		values = append(values, struct {
			key   string
			value any
		}{tariffKey(t.Destination), t.Price})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form and persists the result.
// The whole settings set is revalidated before anything is written.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyStationName:
		settings.Name = value
	case keyStationAddress:
		settings.Address = value
	case keyCurrency:
		settings.Pricing.Currency = strings.ToUpper(value)
	case keyMinPrice, keyMaxPrice:
		f, err := parseAmount(key, value)
		if err != nil {
			return err
		}
		if key == keyMinPrice {
			settings.Pricing.MinPrice = f
		} else {
			settings.Pricing.MaxPrice = f
		}
	case keySeedTariffs:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.SeedDefaultTariffs = b
	default:
		dest, ok := destinationFromTariffKey(key)
		if !ok {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
		f, err := parseAmount(key, value)
		if err != nil {
			return err
		}
		settings.DefaultTariffs[dest.Selector()-1].Price = f
	}

	return s.Save(settings)
}

// Keys lists the setting keys accepted by Set.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyStationName,
		keyStationAddress,
		keyCurrency,
		keyMinPrice,
		keyMaxPrice,
		keySeedTariffs,
	}
	for _, d := range domain.AllDestinations() {
		keys = append(keys, tariffKey(d))
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.StationSettings {
	return domain.DefaultStationSettings()
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return fallback
	}
	v := s.configStore.GetFloat(key)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		logger.Warn("Ignoring %s = %v: must be a positive number, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func (s *SettingsService) getBool(key string, fallback bool) bool {
	v, ok := s.configStore.Get(key)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// parseAmount accepts finite numbers only. ParseFloat also accepts "NaN" and "Inf".
func parseAmount(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return f, nil
}

func tariffKey(d domain.Destination) string {
	return keyTariffPrefix + d.Key()
}

func destinationFromTariffKey(key string) (domain.Destination, bool) {
	name, ok := strings.CutPrefix(key, keyTariffPrefix)
	if !ok {
		return 0, false
	}
	d, err := domain.ParseDestinationKey(name)
	if err != nil {
		return 0, false
	}
	return d, true
}
