package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctdload/internal/core/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the registered CTD tables",
	Long: `Tables prints every table the importer knows about: its source file,
whether it is a mappable domain, and the one-to-many side tables its
pipe-delimited columns expand into.`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, _ []string) error {
	reg := tables.Default()
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("table registry: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, spec := range reg.All() {
		kind := ""
		if spec.Mappable() {
			kind = "  (mappable domain)"
		}
		fmt.Fprintf(out, "%-24s %s%s\n", spec.Name, spec.FileName, kind)
		for _, o2m := range spec.OneToMany {
			fmt.Fprintf(out, "    %s__%s <- %s\n", spec.Name, o2m.ChildColumn, o2m.FileColumn)
		}
	}
	return nil
}
