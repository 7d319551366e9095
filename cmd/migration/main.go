package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/nilosmferreira/damasios-ai/internal/config"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
)

func main() {
	logger := logging.NewConsole(logging.LevelInfo).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	if err := config.LoadDotEnv(); err != nil {
		fail(logger, "load environment", err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fail(logger, "read configuration", crerr.New("DB_URL is required"))
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		fail(logger, "resolve migrations dir", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		fail(logger, "create migrator", crerr.Wrap(err, "migrate.New"))
	}
	defer closeMigrator(logger, m)

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch cmd {
	case "up":
		handleMigrationErr(logger, m.Up())
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		steps, parseErr := parseSteps(os.Args[2:])
		if parseErr != nil {
			fail(logger, "parse arguments", parseErr)
		}
		handleMigrationErr(logger, m.Steps(-steps))
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, versionErr := m.Version()
		if crerr.Is(versionErr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return
		}
		if versionErr != nil {
			fail(logger, "read version", versionErr)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(os.Args) < 3 {
			fail(logger, "parse arguments", crerr.New("force requires a version argument"))
		}
		version, parseErr := parseVersion(os.Args[2])
		if parseErr != nil {
			fail(logger, "parse arguments", parseErr)
		}
		if err := m.Force(version); err != nil {
			fail(logger, "force version", crerr.Wrapf(err, "force version %d", version))
		}
		logger.Info("migration version forced", "version", version)
	case "goto", "migrate":
		if len(os.Args) < 3 {
			fail(logger, "parse arguments", crerr.New("goto requires a target version argument"))
		}
		target, parseErr := parseTarget(os.Args[2])
		if parseErr != nil {
			fail(logger, "parse arguments", parseErr)
		}
		handleMigrationErr(logger, m.Migrate(target))
		logger.Info("migrated", "version", target)
	default:
		printUsage()
		os.Exit(2)
	}
}

func fail(logger *logging.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	_ = logger.Sync()
	os.Exit(1)
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid down steps %q", args[0])
	}
	if steps <= 0 {
		return 0, crerr.New("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid version %q", raw)
	}
	if value < 0 {
		return 0, crerr.New("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, crerr.New("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid target version %q", raw)
	}
	return uint(value), nil
}

func handleMigrationErr(logger *logging.Logger, err error) {
	if err == nil {
		return
	}
	if crerr.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return
	}
	fail(logger, "run migration", err)
}

func closeMigrator(logger *logging.Logger, m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db failed", "error", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", crerr.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", name)
}
