package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
)

var hashResolve bool

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash NAME...",
	Short: "Hash names, or resolve hashes back to names",
	Long: `Hash identifiers the way table and column names are obfuscated, or
with --resolve look hashes up in the dictionary (extended by --terms).

Example:
  bdat hash fev01_msg name
  bdat hash --resolve 0x44bab137 "<0xdeadbeef>"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if hashResolve {
				h, err := parseHashArg(arg)
				if err != nil {
					return err
				}
				fmt.Printf("0x%08x  %s\n", h, dict.Resolve(h))
				continue
			}
			fmt.Printf("0x%08x  %s\n", bdat.HashName(arg), arg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().BoolVar(&hashResolve, "resolve", false, "treat arguments as hashes and resolve them")
}

// parseHashArg accepts both the bare hex form ("0x1234abcd" or
// "1234abcd") and the placeholder form parsers emit ("<0x1234abcd>").
func parseHashArg(s string) (uint32, error) {
	if h, ok := bdat.ParsePlaceholder(s); ok {
		return h, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("not a name hash: %q", s)
	}
	return uint32(n), nil
}
