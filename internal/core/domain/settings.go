package domain

import (
	"fmt"
	"math"
)

const unknownDescription = "Unknown"

// PricingSettings bounds the prices a tariff may carry.
type PricingSettings struct {
	Currency string
	MinPrice float64
	MaxPrice float64
}

// ValidatePrice checks a tariff price against the configured bounds.
func (p PricingSettings) ValidatePrice(price float64) error {
	if !isFinite(price) || price <= 0 {
		return fmt.Errorf("%w: price must be a positive number", ErrInvalidInput)
	}
	if price < p.MinPrice || price > p.MaxPrice {
		return fmt.Errorf("%w: price must be between %s and %s",
			ErrInvalidInput, p.Format(p.MinPrice), p.Format(p.MaxPrice))
	}
	return nil
}

// Format renders an amount with the configured currency, e.g. "1500.00 RUB".
func (p PricingSettings) Format(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, p.Currency)
}

// StationSettings holds the configuration a station and its cashbox are built from.
type StationSettings struct {
	Name    string
	Address string
	Pricing PricingSettings
	// SeedDefaultTariffs controls whether a new cashbox starts with DefaultTariffs.
	SeedDefaultTariffs bool
	// DefaultTariffs is kept in destination order.
	DefaultTariffs []Tariff
}

// DefaultStationSettings returns the settings used when nothing is configured.
func DefaultStationSettings() StationSettings {
	return StationSettings{
		Name:    "Main Station",
		Address: "City Center",
		Pricing: PricingSettings{
			Currency: "RUB",
			MinPrice: 1,
			MaxPrice: 100000,
		},
		SeedDefaultTariffs: true,
		DefaultTariffs: []Tariff{
			{Destination: DestinationMoscow, Price: 1500},
			{Destination: DestinationSaintPetersburg, Price: 1200},
			{Destination: DestinationEkaterinburg, Price: 2000},
			{Destination: DestinationNovosibirsk, Price: 3500},
			{Destination: DestinationSochi, Price: 2500},
			{Destination: DestinationKrasnodar, Price: 2200},
		},
	}
}

// Validate checks that the settings can be used to open a cashbox.
func (s StationSettings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: station name is required", ErrInvalidInput)
	}
	if s.Pricing.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}
	if !isFinite(s.Pricing.MinPrice) || !isFinite(s.Pricing.MaxPrice) {
		return fmt.Errorf("%w: price bounds must be finite numbers", ErrInvalidInput)
	}
	if s.Pricing.MinPrice <= 0 {
		return fmt.Errorf("%w: minimum price must be positive", ErrInvalidInput)
	}
	if s.Pricing.MaxPrice < s.Pricing.MinPrice {
		return fmt.Errorf("%w: maximum price %v is below minimum %v",
			ErrInvalidInput, s.Pricing.MaxPrice, s.Pricing.MinPrice)
	}
	for _, t := range s.DefaultTariffs {
		if !t.Destination.IsValid() {
			return fmt.Errorf("%w: default tariff for unknown destination %d", ErrInvalidInput, t.Destination)
		}
		if err := s.Pricing.ValidatePrice(t.Price); err != nil {
			return fmt.Errorf("default tariff for %s: %w", t.Destination, err)
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
