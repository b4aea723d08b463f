package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"ctdload/internal/config"
	"ctdload/internal/core"
	"ctdload/internal/core/tables"
	"ctdload/internal/download"
	"ctdload/internal/logging"
)

var importFlags struct {
	urls    []string
	force   bool
	only    []string
	exclude []string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Drop, recreate and fully reload the CTD schema",
	Long: `Import performs a full reload:

1. drops every destination table
2. downloads the CTD export files that are not present locally
3. recreates the destination tables from the table registry
4. loads every table, substituting domain identifiers with surrogate
   keys, and expands pipe-delimited columns into side tables

The run is not transactional: a failure mid-run leaves the schema
partially loaded, and the next run starts over from the drop.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringArrayVar(&importFlags.urls, "url", nil,
		"source URL to download (repeatable; default: all registered CTD exports)")
	importCmd.Flags().BoolVar(&importFlags.force, "force", false,
		"re-download files that already exist locally")
	importCmd.Flags().StringSliceVar(&importFlags.only, "only", nil,
		"load only these tables")
	importCmd.Flags().StringSliceVar(&importFlags.exclude, "exclude", nil,
		"skip these tables")
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	reg := tables.Default()
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("table registry: %w", err)
	}

	dsn, err := config.ResolveDSN(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := connect(ctx, cfg, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	urls := importFlags.urls
	if len(urls) == 0 {
		urls = download.URLs(cfg.Import.BaseURL, reg)
	}

	svc := &core.Service{
		DB:        pool,
		Writer:    &core.CopyWriter{DB: pool},
		Reg:       reg,
		Fetcher:   download.New(cfg.Import.DataDir, slog.Default()),
		DataDir:   cfg.Import.DataDir,
		Prefix:    cfg.Import.TablePrefix,
		ChunkSize: cfg.Import.ChunkSize,
		Policy:    cfg.Import.Policy(),
		Log:       slog.Default(),
	}
	return svc.Import(ctx, core.ImportOptions{
		URLs:    urls,
		Force:   importFlags.force,
		Only:    importFlags.only,
		Exclude: importFlags.exclude,
	})
}

// connect builds the pool, pings it, and logs which database it reached.
func connect(ctx context.Context, cfg *config.Config, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(dsn); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
