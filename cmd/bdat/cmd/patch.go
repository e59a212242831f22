package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
)

var (
	patchTranslations string
	patchOut          string
	patchAllowSkips   bool
	patchVerify       bool
	patchWorkers      int
)

// patchCmd represents the patch command
var patchCmd = &cobra.Command{
	Use:   "patch FILE...",
	Short: "Apply JSON translations and write patched copies",
	Long: `Apply a JSON translation file to each input and write the patched
container next to it as NAME.patched.bdat (or to --output).  The
translation file is --translations, or the input's sibling .json.

Tables whose message-id columns cannot address the grown string table
are left untouched and reported; that counts as failure unless
--allow-skips is given.  Inputs are processed in parallel.

Example:
  bdat patch --verify bdat_common.bdat`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if patchOut != "" && len(args) > 1 {
			return fmt.Errorf("--output needs a single input file")
		}
		if patchTranslations != "" && len(args) > 1 {
			return fmt.Errorf("--translations needs a single input file")
		}
		workers := patchWorkers
		if workers <= 0 {
			workers = cfg.Workers
		}
		if workers <= 0 {
			workers = 1
		}

		outcomes := make([]patchOutcome, len(args))
		p := pool.New().WithMaxGoroutines(workers)
		for i, path := range args {
			i, path := i, path
			p.Go(func() {
				outcomes[i] = patchOne(path)
			})
		}
		p.Wait()

		var failed, skipped bool
		for _, oc := range outcomes {
			if oc.err != nil {
				logger.Error().Str("file", oc.path).Err(oc.err).Msg("patch failed")
				failed = true
				continue
			}
			printOutcome(oc)
			if len(oc.res.Overflows) > 0 {
				skipped = true
			}
		}
		if failed {
			return fmt.Errorf("patching failed")
		}
		if skipped && !patchAllowSkips {
			return fmt.Errorf("translations were skipped; rerun with --allow-skips to accept the loss")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
	patchCmd.Flags().StringVarP(&patchTranslations, "translations", "t", "", "JSON translation file (default: input with .json extension)")
	patchCmd.Flags().StringVarP(&patchOut, "output", "o", "", "output file (single input only)")
	patchCmd.Flags().BoolVar(&patchAllowSkips, "allow-skips", false, "exit zero even when tables overflowed")
	patchCmd.Flags().BoolVar(&patchVerify, "verify", false, "re-parse the output and check every applied cell")
	patchCmd.Flags().IntVar(&patchWorkers, "workers", 0, "parallel inputs (default: config, then GOMAXPROCS)")
}

type patchOutcome struct {
	path string
	out  string
	res  *bdat.BuildResult
	err  error
}

func patchOne(path string) patchOutcome {
	oc := patchOutcome{path: path}
	f, err := parseInput(path)
	if err != nil {
		oc.err = err
		return oc
	}

	trPath := patchTranslations
	if trPath == "" {
		trPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	}
	raw, err := os.ReadFile(trPath)
	if err != nil {
		oc.err = fmt.Errorf("translations: %w", err)
		return oc
	}
	var tm bdat.TranslationMap
	if err := json.Unmarshal(raw, &tm); err != nil {
		oc.err = fmt.Errorf("translations %s: %w", trPath, err)
		return oc
	}

	res, err := f.Rebuild(tm)
	if err != nil {
		oc.err = err
		return oc
	}
	oc.res = res
	oc.out = patchOut
	if oc.out == "" {
		oc.out = outputName(path)
	}
	if err := os.WriteFile(oc.out, res.Data, 0o644); err != nil {
		oc.err = err
		return oc
	}
	if patchVerify {
		if err := verifyOutput(res, tm); err != nil {
			oc.err = err
			return oc
		}
		logger.Debug().Str("file", oc.out).Msg("verified")
	}
	return oc
}

func outputName(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".bdat"
	}
	return strings.TrimSuffix(path, ext) + ".patched" + ext
}

func printOutcome(oc patchOutcome) {
	fmt.Printf("%s -> %s (%d bytes, digest %016x)\n", oc.path, oc.out, len(oc.res.Data), oc.res.OutputDigest)
	for _, st := range oc.res.Tables {
		if st.Patched == 0 && st.Skipped == 0 {
			continue
		}
		line := fmt.Sprintf("  %s: %d patched", st.Table, st.Patched)
		if st.Skipped > 0 {
			line += fmt.Sprintf(", %d skipped", st.Skipped)
		}
		if st.StringTableAfter != st.StringTableBefore {
			line += fmt.Sprintf(", strings %dB -> %dB", st.StringTableBefore, st.StringTableAfter)
		}
		fmt.Println(line)
	}
	for _, o := range oc.res.Overflows {
		logger.Error().Str("table", o.Table).Msg(o.Reason)
	}
	if n := len(oc.res.Unmatched); n > 0 {
		logger.Warn().Str("file", oc.path).Int("refs", n).Msg("translations matched no cell")
		for _, ref := range oc.res.Unmatched {
			logger.Debug().Stringer("ref", ref).Msg("unmatched")
		}
	}
}

// verifyOutput re-parses the emitted bytes and checks that every
// translation that was neither unmatched nor abandoned reads back
// exactly.
func verifyOutput(res *bdat.BuildResult, tm bdat.TranslationMap) error {
	f, err := bdat.ParseWithOptions(res.Data, bdat.ParseOptions{Resolver: dict})
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	unmatched := make(map[bdat.CellRef]bool, len(res.Unmatched))
	for _, ref := range res.Unmatched {
		unmatched[ref] = true
	}
	overflowed := make(map[string]bool, len(res.Overflows))
	for _, o := range res.Overflows {
		overflowed[o.Table] = true
	}
	for _, ref := range tm.Refs() {
		if unmatched[ref] || overflowed[ref.Table] {
			continue
		}
		t, ok := f.Table(ref.Table)
		if !ok {
			return fmt.Errorf("verify: table %s missing from output", ref.Table)
		}
		v, ok := t.Cell(ref.Row, ref.Column)
		if !ok {
			return fmt.Errorf("verify: cell %s missing from output", ref)
		}
		if v.Text() != tm[ref] {
			return fmt.Errorf("verify: cell %s reads %q, want %q", ref, v.Text(), tm[ref])
		}
	}
	return nil
}
