package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-mpsse/executor"
	"github.com/moffa90/go-mpsse/mpssetest"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a script against a simulated device",
	Long: `Initialize a simulated MPSSE device with the configured settings, run a
command script on it, and print the response.

Example:
  mpssectl run read_id.mpsse --miso ef4018
  mpssectl run loop.mpsse --loopback --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := compileScript(args[0])
		if err != nil {
			return err
		}

		dev := mpssetest.NewDevice()
		misoHex, _ := cmd.Flags().GetString("miso")
		miso, err := hex.DecodeString(misoHex)
		if err != nil {
			return fmt.Errorf("invalid --miso: %w", err)
		}
		dev.MISO.Write(miso)
		dev.LowerInputs, _ = cmd.Flags().GetUint8("inputs")

		reg := prometheus.NewRegistry()
		logger := loggerFrom(cmd)
		ex := executor.NewStream(dev,
			executor.WithLogger(logger),
			executor.WithMetrics(executor.NewMetrics(reg)),
		)

		ctx := cmd.Context()
		if err := ex.Init(ctx, configFrom(cmd).Settings); err != nil {
			return err
		}

		// Init resets the engine, so loopback is applied afterwards.
		if loop, _ := cmd.Flags().GetBool("loopback"); loop {
			dev.Loopback = true
		}

		resp, err := executor.RunProgram(ctx, ex, prog)
		if err != nil {
			return err
		}

		logger.Info().
			Int("commands", dev.Commands()).
			Int("tx", len(prog.Bytes)).
			Int("rx", len(resp)).
			Msg("script complete")

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, hex.EncodeToString(resp))
		printReads(out, prog.Reads, resp)

		if show, _ := cmd.Flags().GetBool("metrics"); show {
			families, err := reg.Gather()
			if err != nil {
				return fmt.Errorf("failed to gather metrics: %w", err)
			}
			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("miso", "", "Hex bytes the device returns for reads")
	runCmd.Flags().Uint8("inputs", 0, "Levels of pins 0-7 configured as inputs")
	runCmd.Flags().Bool("loopback", false, "Start with loopback enabled")
	runCmd.Flags().Bool("metrics", false, "Print transfer metrics after the run")
	rootCmd.AddCommand(runCmd)
}
