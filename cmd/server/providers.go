package main

import (
	"fmt"
	"log"

	"credential_store_backend/internal/config"
	"credential_store_backend/internal/platform/crypto"
	"credential_store_backend/internal/platform/database"
	"credential_store_backend/internal/user"

	"go.uber.org/zap"
)

// provideHasher builds the password hasher from BCRYPT_COST.
func provideHasher(cfg *config.Config) user.PasswordHasher {
	return crypto.NewBcryptHasher(cfg.BcryptCost)
}

// provideRepository selects the registry backend named by STORE_DRIVER. The
// cleanup closes the database and flushes the logger.
func provideRepository(cfg *config.Config, logger *zap.Logger) (user.Repository, func(), error) {
	flush := func() {
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}

	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := database.NewGORM(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := user.Migrate(db); err != nil {
			database.CloseGORMDB(db, logger)
			return nil, nil, fmt.Errorf("failed to migrate users table: %w", err)
		}
		cleanup := func() {
			logger.Info("Executing cleanup tasks...")
			database.CloseGORMDB(db, logger)
			flush()
		}
		return user.NewGORMRepository(db), cleanup, nil
	case config.StoreDriverMemory, "":
		logger.Info("Using in-memory credential store")
		return user.NewMemoryRepository(), flush, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
