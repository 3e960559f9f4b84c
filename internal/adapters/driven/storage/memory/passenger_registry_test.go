package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

func TestNewPassengerRegistry(t *testing.T) {
	registry := NewPassengerRegistry()
	require.NotNil(t, registry)
	assert.NotNil(t, registry.byPassport)

	count, err := registry.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPassengerRegistry_Register_AssignsSequentialIDs(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()

	first, err := registry.Register(ctx, domain.Passenger{Passport: "111111", FirstName: "Ana", LastName: "Li"})
	require.NoError(t, err)
	second, err := registry.Register(ctx, domain.Passenger{Passport: "222222", FirstName: "Bo", LastName: "Chen"})
	require.NoError(t, err)

	assert.Equal(t, domain.PassengerID(0), first.ID)
	assert.Equal(t, domain.PassengerID(1), second.ID)
	assert.Equal(t, "Ana", first.FirstName)
}

func TestPassengerRegistry_Register_DuplicatePassport(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()

	_, err := registry.Register(ctx, domain.Passenger{Passport: "111111", FirstName: "Ana", LastName: "Li"})
	require.NoError(t, err)

	_, err = registry.Register(ctx, domain.Passenger{Passport: "111111", FirstName: "Other", LastName: "Person"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePassport)

	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := registry.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
}

func TestPassengerRegistry_Get(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()

	_, err := registry.Register(ctx, domain.Passenger{Passport: "111111", FirstName: "Ana", LastName: "Li"})
	require.NoError(t, err)
	_, err = registry.Register(ctx, domain.Passenger{Passport: "222222", FirstName: "Bo", LastName: "Chen"})
	require.NoError(t, err)

	p, err := registry.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "222222", p.Passport)

	for _, idx := range []int{-1, 2, 5} {
		_, err := registry.Get(ctx, idx)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestPassengerRegistry_List_InsertionOrder(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()

	passports := []string{"333333", "111111", "222222"}
	for _, pp := range passports {
		_, err := registry.Register(ctx, domain.Passenger{Passport: pp, FirstName: "Al", LastName: "Bo"})
		require.NoError(t, err)
	}

	list, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, passports[i], p.Passport)
		assert.Equal(t, domain.PassengerID(i), p.ID)
	}
}

func TestPassengerRegistry_List_ReturnsCopy(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()

	_, err := registry.Register(ctx, domain.Passenger{Passport: "111111", FirstName: "Ana", LastName: "Li"})
	require.NoError(t, err)

	list, err := registry.List(ctx)
	require.NoError(t, err)
	list[0].FirstName = "Changed"

	stored, err := registry.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
}

func TestPassengerRegistry_ConcurrentRegister(t *testing.T) {
	registry := NewPassengerRegistry()
	ctx := context.Background()
	var wg sync.WaitGroup

	// Two goroutines per passport: exactly one of each pair may win.
	for i := 0; i < 50; i++ {
		passport := fmt.Sprintf("%06d", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = registry.Register(ctx, domain.Passenger{Passport: passport, FirstName: "Al", LastName: "Bo"})
			}()
		}
	}
	wg.Wait()

	list, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)

	seen := make(map[string]bool)
	for i, p := range list {
		assert.False(t, seen[p.Passport], "duplicate passport %s", p.Passport)
		seen[p.Passport] = true
		assert.Equal(t, domain.PassengerID(i), p.ID)
	}
}
