package main

import (
	"context"
	"fmt"

	"rentora/internal/app"
	"rentora/internal/config"
	"rentora/internal/domain/audit"
	"rentora/internal/infrastructure/email"
	"rentora/internal/infrastructure/storage/postgres"
	"rentora/pkg/logger"
)

// runtime is everything a command needs after configuration is loaded.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	pool     *postgres.Pool // nil for the in-memory driver
	services *app.Services
}

func (r *runtime) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
	_ = r.log.Sync()
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	logger.SetDefault(log)
	return cfg, log, nil
}

func openPool(ctx context.Context, cfg *config.Config) (*postgres.Pool, error) {
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL, int32(cfg.DBMaxConns)))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// bootstrap loads configuration and builds the services over the configured driver.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log}

	opts := app.Options{}
	if cfg.SMTP.Host != "" {
		opts.Mailer = email.NewSMTPSender(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			TLSMode:  cfg.SMTP.TLSMode,
		})
		log.Infow("smtp delivery enabled", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
	}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.pool = pool
		store := postgres.NewStore(pool)

		if cfg.AuditEnabled {
			auditSvc, err := postgres.NewAuditService(store.TxManager())
			if err != nil {
				pool.Close()
				return nil, err
			}
			opts.Audit = auditSvc
		}

		rt.services = app.NewServices(store, app.PostgresCollections(store), opts)
	default:
		if cfg.AuditEnabled {
			opts.Audit = audit.LogRecorder{}
		}
		rt.services = app.NewMemoryServices(opts)
	}

	log.Infow("storage ready", "driver", cfg.StorageDriver, "audit", cfg.AuditEnabled)
	return rt, nil
}
