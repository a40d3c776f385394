package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/abstratium/partner/internal/bootstrap"
	"github.com/abstratium/partner/internal/infrastructure/cache"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/abstratium/partner/internal/infrastructure/persistence"
	"github.com/abstratium/partner/internal/infrastructure/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configFile string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "partnerctl",
		Short:        "Partner administration tool",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: ./config.toml or /app/config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Write the partner listing to the configured export sink",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withServices(cmd.Context(), opts, func(s *bootstrap.Services) error {
					resp, err := s.Export.Export(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "exported %d partners to %s\n", resp.Count, resp.Location)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "search [term]",
			Short: "List partners, optionally filtered by a search term",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				term := ""
				if len(args) == 1 {
					term = args[0]
				}
				return withServices(cmd.Context(), opts, func(s *bootstrap.Services) error {
					results, err := s.Partner.Search(cmd.Context(), term)
					if err != nil {
						return err
					}
					return printPartners(cmd.OutOrStdout(), results)
				})
			},
		},
		&cobra.Command{
			Use:   "countries",
			Short: "List the selectable countries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, c := range partnerapp.Countries() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.Code, c.Name)
				}
				return nil
			},
		},
	)
	return root
}

func printPartners(out io.Writer, results []partnerapp.PartnerSearchResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tKIND\tNAME\tEMAIL\tACTIVE")
	for _, r := range results {
		name := r.LegalName
		if r.FirstName != "" || r.LastName != "" {
			name = r.FirstName + " " + r.LastName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", r.PartnerNumber, r.PartnerType, name, r.Email, r.Active)
	}
	return w.Flush()
}

func withServices(ctx context.Context, opts *options, fn func(s *bootstrap.Services) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := logger.New(&logger.Config{
		Level:      opts.logLevel,
		Format:     "console",
		Output:     "stderr",
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

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(opts.logLevel), cfg.Database.SlowQuery)))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	sink, err := storage.NewExportSink(ctx, cfg, log)
	if err != nil {
		return err
	}

	store := cache.NewInMemoryStore()
	defer func() { _ = store.Close() }()

	return fn(bootstrap.NewServices(db.DB, cache.NewReadThrough(store, 0, log), sink, log))
}
