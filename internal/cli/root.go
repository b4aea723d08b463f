// Package cli wires the cobra command tree for the ctdload binary.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctdload",
	Short: "CTD bulk importer for PostgreSQL",
	Long: `ctdload downloads the Comparative Toxicogenomics Database bulk exports
and fully reloads them into a PostgreSQL schema.

Every run drops and recreates the destination tables, resolves the
cross-file identifiers of the mappable domains (chemical, disease, gene,
pathway) into dense surrogate keys, and expands pipe-delimited columns
into one-to-many side tables.

The connection string is resolved from $CTDLOAD_DATABASE_URL (or
$DATABASE_URL), then from ~/.ctdload/config.yaml; on first use the file
is created with the built-in default.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
