package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Fetcher downloads the source files for the given URLs into the data
// directory, skipping files that already exist unless force is set.
type Fetcher interface {
	Fetch(ctx context.Context, urls []string, force bool) error
}

// Service orchestrates one full import: drop, download, recreate, load.
// The whole run is sequential on a single connection pool and is not
// transactional; a failure mid-run leaves the schema partially loaded.
type Service struct {
	DB        DBTX
	Writer    RowWriter
	Reg       *Registry
	Fetcher   Fetcher
	DataDir   string
	Prefix    string
	ChunkSize int
	Policy    DriftPolicy
	Log       *slog.Logger
}

// ImportOptions selects what one Import run does.
type ImportOptions struct {
	// URLs to download before loading. Empty means the caller has the
	// files in place already (or the Fetcher knows its defaults).
	URLs []string
	// Force re-downloads files that already exist locally.
	Force bool
	// Only restricts the run to the named tables; Exclude removes
	// tables from it. Mappable domains are always scanned for their
	// mappings regardless of these filters.
	Only    []string
	Exclude []string
}

// Import performs the full reload: drop all destination tables, download
// missing source files, recreate the schema, then load every selected
// table and expand its one-to-many columns.
func (s *Service) Import(ctx context.Context, opts ImportOptions) error {
	log := s.logger().With("run_id", uuid.NewString())
	log.Info("starting full reload", "data_dir", s.DataDir, "prefix", s.Prefix)

	if err := DropAll(ctx, s.DB, s.Reg, s.Prefix); err != nil {
		return err
	}
	if s.Fetcher != nil && len(opts.URLs) > 0 {
		if err := s.Fetcher.Fetch(ctx, opts.URLs, opts.Force); err != nil {
			return fmt.Errorf("download source files: %w", err)
		}
	}
	if err := CreateAll(ctx, s.DB, s.Reg, s.Prefix); err != nil {
		return err
	}

	run := NewRun(s.Reg, s.DataDir, s.ChunkSize, log)
	loader := &Loader{
		Writer:    s.Writer,
		Run:       run,
		DataDir:   s.DataDir,
		Prefix:    s.Prefix,
		ChunkSize: s.ChunkSize,
		Policy:    s.Policy,
		Log:       log,
	}
	expander := &Expander{
		Writer:    s.Writer,
		DataDir:   s.DataDir,
		Prefix:    s.Prefix,
		ChunkSize: s.ChunkSize,
		Policy:    s.Policy,
		Log:       log,
	}

	selected := tableFilter(opts.Only, opts.Exclude)
	for _, spec := range s.Reg.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !selected(spec.Name) {
			log.Debug("table filtered out", "table", spec.Name)
			continue
		}
		if err := loader.Load(ctx, spec); err != nil {
			return fmt.Errorf("import %s: %w", spec.Name, err)
		}
		for _, o2m := range spec.OneToMany {
			if err := expander.Expand(ctx, spec, o2m); err != nil {
				return fmt.Errorf("import %s__%s: %w", spec.Name, o2m.ChildColumn, err)
			}
		}
	}

	log.Info("full reload complete")
	return nil
}

func tableFilter(only, exclude []string) func(string) bool {
	onlySet := make(map[string]bool, len(only))
	for _, name := range only {
		onlySet[name] = true
	}
	excludeSet := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excludeSet[name] = true
	}
	return func(name string) bool {
		if excludeSet[name] {
			return false
		}
		return len(onlySet) == 0 || onlySet[name]
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}
