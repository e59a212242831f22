package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Summarize the tables in one or more files",
	Long: `Summarize each container: version, table count, and per table the
layout variant, naming scheme, packing strategy, geometry and columns.

Example:
  bdat info bdat_common.bdat`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := runInfo(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(path string) error {
	f, err := parseInput(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: version %d, %d tables, %d bytes\n", path, f.Version, len(f.Tables), f.FileSize)
	for _, t := range f.Tables {
		naming := "plain"
		if t.Hashed {
			naming = "hashed"
		}
		fmt.Printf("  %-32s %s %s pack=%s base=%d rows=%d cols=%d\n",
			t.Name, t.Layout, naming, t.Packing, t.BaseID, len(t.Rows), len(t.Columns))
		if len(t.Columns) > 0 {
			cols := make([]string, len(t.Columns))
			for i, c := range t.Columns {
				cols[i] = fmt.Sprintf("%s:%s", c.Name, c.Type)
			}
			fmt.Printf("    %s\n", strings.Join(cols, " "))
		}
	}
	return nil
}
