package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/config"
	"library-rental-backend/internal/repository/memory"
	"library-rental-backend/internal/service"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		store, closeFn, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Type: config.StoreTypeMemory}})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Type: "cassandra"}})
		assert.Error(t, err)
	})
}

func TestNewServices(t *testing.T) {
	cfg := &config.Config{
		Rental: config.RentalConfig{LoanPeriodDays: 21, SweepBatchSize: 10},
		Email:  config.EmailConfig{Provider: config.EmailProviderLog},
	}
	svcs := NewServices(cfg, memory.NewStore(), service.UTCClock)
	require.NotNil(t, svcs.Rental)
	assert.Equal(t, cfg.LoanPeriod(), svcs.Rules.LoanPeriod(context.Background()))
	assert.Equal(t, service.NewLogEmailService(), NewEmailService(cfg))
}
