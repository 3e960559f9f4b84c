package driving

import (
	"context"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// StationService owns the single cashbox of a run.
type StationService interface {
	// Cashbox returns the current cashbox. Repeated calls return the same
	// instance until Reset is called.
	Cashbox() CashboxService

	// Info describes the station and summarises its cashbox.
	Info(ctx context.Context) (domain.StationInfo, error)

	// Reset closes the current cashbox and opens a fresh one.
	Reset(ctx context.Context) error
}
