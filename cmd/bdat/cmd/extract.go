package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
)

var (
	extractAll bool
	extractOut string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Write a JSON translation template",
	Long: `Write a JSON translation template for the file: one "table:row:column"
key per translatable cell, valued with the original text.  Edit the
values and feed the result to patch.  By default only columns the
inspector marks translatable are included; --all takes every
text-bearing cell.

Example:
  bdat extract bdat_common.bdat > bdat_common.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parseInput(args[0])
		if err != nil {
			return err
		}
		var rep *bdat.Report
		if !extractAll {
			rep = bdat.Inspect(f, inspectorOptions())
		}
		tpl := bdat.TranslationTemplate(f, rep)
		logger.Debug().Int("cells", len(tpl)).Msg("template collected")
		return writeJSON(extractOut, tpl)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "include every text-bearing cell, ignoring the inspector")
	extractCmd.Flags().StringVarP(&extractOut, "output", "o", "", "write to file instead of stdout")
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
