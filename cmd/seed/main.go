package main

import (
	"context"
	"os"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/app"
	"github.com/nilosmferreira/damasios-ai/internal/config"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/postgres"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/storage"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

const seedTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewConsole(cfg.LogLevel).Named("seed")
	defer func() { _ = logger.Sync() }()

	if cfg.StorageDriver != storage.DriverPostgres {
		logger.Error("seed requires STORAGE_DRIVER=postgres", "storage", string(cfg.StorageDriver))
		exit(logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		exit(logger)
	}
	defer func() { _ = db.Close() }()

	auth := app.NewAuthService(cfg, postgres.NewUserRepository(db), logger)
	admin, err := auth.PrepareUser(usecase.CreateUserInput{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     string(user.RoleAdmin),
	})
	if err != nil {
		logger.Error("build admin user", "error", err)
		exit(logger)
	}

	created, err := postgres.BootstrapSeed(ctx, db, admin)
	if err != nil {
		logger.Error("seed database", "error", err)
		exit(logger)
	}

	if created {
		logger.Info("admin user created", "email", admin.Email)
	} else {
		logger.Info("admin user already exists", "email", admin.Email)
	}
	if cfg.SeedAdminPassword == config.DefaultSeedAdminPassword {
		logger.Warn("admin uses the default password; change it before going live")
	}
}

func exit(logger *logging.Logger) {
	_ = logger.Sync()
	os.Exit(1)
}
