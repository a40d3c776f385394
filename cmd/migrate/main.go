package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/abstratium/partner/internal/infrastructure/migration"
	"github.com/abstratium/partner/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configFile     string
	migrationsPath string
	logLevel       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Partner database migration tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: ./config.toml or /app/config.toml)")
	root.PersistentFlags().StringVar(&opts.migrationsPath, "path", "", "migrations directory (default: migrations embedded in the binary)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "step <n>",
			Short: "Apply n migrations (negative rolls back)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate to a specific version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error { return m.GoTo(uint(version)) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *migration.Migrator, log *zap.Logger) error {
					status, err := m.Status()
					if err != nil {
						return err
					}
					if status.Version == 0 {
						log.Info("No migrations applied")
						return nil
					}
					log.Info("Current migration version",
						zap.Uint("version", status.Version),
						zap.Bool("dirty", status.Dirty),
					)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the version without running migrations (clears a dirty state)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error { return m.Force(version) })
			},
		},
		&cobra.Command{
			Use:   "create <name> [description]",
			Short: "Create a new up/down migration pair",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				description := ""
				if len(args) == 2 {
					description = args[1]
				}
				dir := opts.migrationsPath
				if dir == "" {
					dir = "migrations"
				}
				mf, err := migration.CreateMigration(dir, args[0], description)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\ncreated %s\n", mf.UpPath, mf.DownPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List migrations in the migrations directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir := opts.migrationsPath
				if dir == "" {
					dir = "migrations"
				}
				list, err := migration.ListMigrations(dir)
				if err != nil {
					return err
				}
				for _, m := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%06d  %s\n", m.Number, m.Name)
				}
				return nil
			},
		},
	)
	return root
}

func withMigrator(opts *options, fn func(m *migration.Migrator, log *zap.Logger) error) error {
	log, err := logger.New(&logger.Config{
		Level:      opts.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadFrom(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	var m *migration.Migrator
	if opts.migrationsPath != "" {
		m, err = migration.NewFromPath(db, opts.migrationsPath, log)
	} else {
		m, err = migration.New(db, migrations.FS, log)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Warn("Failed to close migrator", zap.Error(cerr))
		}
	}()

	return fn(m, log)
}
