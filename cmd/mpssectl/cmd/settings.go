package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-mpsse/config"
)

type settingsView struct {
	Reset          bool    `toml:"reset" yaml:"reset"`
	InTransferSize uint32  `toml:"in_transfer_size" yaml:"in_transfer_size"`
	ReadTimeout    string  `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   string  `toml:"write_timeout" yaml:"write_timeout"`
	LatencyTimer   string  `toml:"latency_timer" yaml:"latency_timer"`
	Mask           uint8   `toml:"mask" yaml:"mask"`
	ClockFrequency *uint32 `toml:"clock_frequency,omitempty" yaml:"clock_frequency,omitempty"`
	Commands       string  `toml:"commands" yaml:"commands"`
	Log            logView `toml:"log" yaml:"log"`
}

type logView struct {
	Level string `toml:"level" yaml:"level"`
	JSON  bool   `toml:"json" yaml:"json"`
}

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	Long: `Print the settings run would use after applying the config file, along
with the setup commands Init sends.

Example:
  mpssectl settings --config mpsse.toml --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := newSettingsView(configFrom(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format, _ := cmd.Flags().GetString("format"); format {
		case "toml":
			return toml.NewEncoder(out).Encode(view)
		case "yaml":
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(view)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	},
}

func init() {
	settingsCmd.Flags().String("format", "toml", "Output format (toml or yaml)")
	rootCmd.AddCommand(settingsCmd)
}

func newSettingsView(cfg config.Config) (settingsView, error) {
	s := cfg.Settings
	cmds, err := s.Commands()
	if err != nil {
		return settingsView{}, err
	}

	return settingsView{
		Reset:          s.Reset,
		InTransferSize: s.InTransferSize,
		ReadTimeout:    s.ReadTimeout.String(),
		WriteTimeout:   s.WriteTimeout.String(),
		LatencyTimer:   s.LatencyTimer.String(),
		Mask:           s.Mask,
		ClockFrequency: s.ClockFrequency,
		Commands:       cmds.String(),
		Log:            logView{Level: cfg.Log.Level, JSON: cfg.Log.JSON},
	}, nil
}
