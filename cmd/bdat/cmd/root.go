package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/mmapfile"
	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/terms"
)

var (
	cfgFile    string
	termsFiles []string
	verbose    bool

	cfg    *Config
	logger zerolog.Logger
	dict   *bdat.Dictionary
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bdat",
	Short: "Inspect, extract and patch BDAT game data files",
	Long: `bdat works with the binary tabular data files console games ship their
text in: listing tables, hashing names, extracting translation templates
and writing translated copies back out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)
		var err error
		if cfg, err = loadConfig(cfgFile); err != nil {
			return err
		}
		dict = bdat.NewDictionary()
		for _, path := range append(cfg.Terms, termsFiles...) {
			names, err := terms.LoadFile(path)
			if err != nil {
				return fmt.Errorf("terms %s: %w", path, err)
			}
			dict.Extend(names...)
			logger.Debug().Str("file", path).Int("names", len(names)).Msg("extended dictionary")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./bdat.yaml or ~/.config/bdat/bdat.yaml)")
	rootCmd.PersistentFlags().StringArrayVar(&termsFiles, "terms", nil, "YAML name list extending the dictionary (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// newLogger returns a properly configured zerolog logger instance.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// readInput maps a file read-only, falling back to an ordinary read when
// mapping is unavailable.  The caller must invoke done when finished with
// the bytes.
func readInput(path string) (data []byte, done func(), err error) {
	if f, err := mmapfile.Open(path); err == nil {
		return f.Data(), func() { _ = f.Close() }, nil
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}

// parseInput reads and parses one container, logging any per-table skips
// and parse warnings.
func parseInput(path string) (*bdat.File, error) {
	data, done, err := readInput(path)
	if err != nil {
		return nil, err
	}
	defer done()
	f, err := bdat.ParseWithOptions(data, bdat.ParseOptions{Resolver: dict})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, sk := range f.Skipped {
		logger.Warn().Str("file", path).Int("table", sk.Index).Err(sk.Err).Msg("skipped malformed table")
	}
	for _, w := range f.Warnings {
		logger.Warn().Str("file", path).Msg(w)
	}
	return f, nil
}

func inspectorOptions() bdat.InspectorOptions {
	return bdat.InspectorOptions{
		SafetyMargin:  cfg.SafetyMargin,
		SampleCap:     cfg.SampleCap,
		ArchiveSuffix: cfg.ArchiveSuffix,
	}
}
