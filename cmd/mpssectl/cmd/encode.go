package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-mpsse/mpsse"
	"github.com/moffa90/go-mpsse/script"
	"github.com/moffa90/go-mpsse/static"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <script>",
	Short: "Compile a script and print the command stream",
	Long: `Compile a command script and print the encoded bytes in hex, the
response length, and the response range of every named command.

Example:
  mpssectl encode read_id.mpsse`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := compileScript(args[0])
		if err != nil {
			return err
		}

		logger := loggerFrom(cmd)
		logger.Debug().
			Str("script", args[0]).
			Int("size", len(prog.Bytes)).
			Int("read_len", prog.ReadLen).
			Msg("script compiled")

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, hex.EncodeToString(prog.Bytes))
		fmt.Fprintf(out, "size %d\n", len(prog.Bytes))
		fmt.Fprintf(out, "read_len %d\n", prog.ReadLen)
		printReads(out, prog.Reads, nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func compileScript(path string) (*static.Program, error) {
	s, err := script.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	prog, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile script: %w", err)
	}
	return prog, nil
}

// printReads prints named ranges in response order. When resp is non-nil the
// bytes of each range are printed as well.
func printReads(w io.Writer, reads map[string]mpsse.Range, resp []byte) {
	names := make([]string, 0, len(reads))
	for name := range reads {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return reads[names[i]].Start < reads[names[j]].Start
	})

	for _, name := range names {
		r := reads[name]
		if resp == nil {
			fmt.Fprintf(w, "%s %s\n", name, r)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", name, r, hex.EncodeToString(r.Of(resp)))
	}
}
