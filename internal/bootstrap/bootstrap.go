// Package bootstrap builds the pieces both binaries share from a loaded config.
package bootstrap

import (
	"context"
	"fmt"

	"library-rental-backend/internal/config"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
	"library-rental-backend/internal/repository/memory"
	"library-rental-backend/internal/repository/postgres"
	"library-rental-backend/internal/service"
)

// Services is every engine service wired against one store.
type Services struct {
	Rental    service.RentalService
	Overdue   service.OverdueService
	Inventory service.InventoryService
	Rules     service.RentalRuleService
	Reminder  service.ReminderService
}

// OpenStore returns the configured record store and a func that releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, func() error, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		return memory.NewStore(), func() error { return nil }, nil

	case config.StoreTypePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		store, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if cfg.Store.EnsureSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
}

func NewEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == config.EmailProviderSendGrid {
		logger.Info("Overdue reminders delivered via SendGrid", "from", cfg.Email.From)
		return service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	}
	logger.Info("Overdue reminders written to log")
	return service.NewLogEmailService()
}

func NewServices(cfg *config.Config, store repository.Store, now service.Clock) *Services {
	rules := service.NewRentalRuleService(store.RentalRules(), cfg.LoanPeriod(), now)
	return &Services{
		Rental:    service.NewRentalService(store, rules),
		Overdue:   service.NewOverdueService(store, int32(cfg.Rental.SweepBatchSize)),
		Inventory: service.NewInventoryService(store.Books(), store.Rentals()),
		Rules:     rules,
		Reminder:  service.NewReminderService(store, NewEmailService(cfg)),
	}
}
