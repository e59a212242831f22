package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
)

var inspectOut string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Report translatability, byte budgets and markup tags",
	Long: `Classify every column of every table: whether it looks translatable
and why, how many bytes a translation may need, and which markup
substrings must be preserved verbatim.  Output is JSON.

Example:
  bdat inspect bdat_common.bdat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parseInput(args[0])
		if err != nil {
			return err
		}
		return writeJSON(inspectOut, bdat.Inspect(f, inspectorOptions()))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectOut, "output", "o", "", "write to file instead of stdout")
}
