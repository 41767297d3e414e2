package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readIDScript = `set_gpio_lower 0x00 0x0b
clock_data_out msb_neg 9f
clock_data_in msb_pos 3 as id
gpio_lower as pins
send_immediate
`

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncodeCommand(t *testing.T) {
	path := writeTemp(t, "read_id.mpsse", readIDScript)

	stdout, _, err := execute(t, "encode", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "80000b1100009f2002008187", lines[0])
	assert.Equal(t, "size 12", lines[1])
	assert.Equal(t, "read_len 4", lines[2])
	assert.Equal(t, "id 0..3", lines[3])
	assert.Equal(t, "pins 3..4", lines[4])
}

func TestEncodeCommandLogs(t *testing.T) {
	path := writeTemp(t, "read_id.mpsse", readIDScript)

	_, stderr, err := execute(t, "encode", path, "--log-level", "debug", "--log-json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"script compiled"`)
	assert.Contains(t, stderr, `"size":12`)
	assert.Contains(t, stderr, `"read_len":4`)
}

func TestEncodeCommandErrors(t *testing.T) {
	_, _, err := execute(t, "encode", filepath.Join(t.TempDir(), "missing.mpsse"))
	assert.Error(t, err)

	path := writeTemp(t, "bad.mpsse", "clock_bits_in msb_pos 12\n")
	_, _, err = execute(t, "encode", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRunCommand(t *testing.T) {
	path := writeTemp(t, "read_id.mpsse", readIDScript)

	stdout, _, err := execute(t, "run", path, "--miso", "ef4018", "--inputs", "0xf0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ef4018f0", lines[0])
	assert.Equal(t, "id 0..3 ef4018", lines[1])
	assert.Equal(t, "pins 3..4 f0", lines[2])
}

func TestRunCommandLoopbackAndMetrics(t *testing.T) {
	path := writeTemp(t, "loop.mpsse", "clock_data lsb_pos cafe as echo\n")

	stdout, stderr, err := execute(t, "run", path, "--loopback", "--metrics", "--log-level", "debug", "--log-json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "cafe\necho 0..2 cafe\n"))
	assert.Contains(t, stdout, `mpsse_bytes_total{direction="rx"} 2`)
	assert.Contains(t, stderr, `"message":"script complete"`)
	assert.Contains(t, stderr, `"app":"mpssectl"`)
}

func TestRunCommandBadMISO(t *testing.T) {
	path := writeTemp(t, "read_id.mpsse", readIDScript)

	_, _, err := execute(t, "run", path, "--miso", "xyz")
	assert.Error(t, err)
}

func TestSettingsCommand(t *testing.T) {
	cfg := writeTemp(t, "mpsse.toml", "mask = 0x0B\nclock_frequency = 1000000\n")

	stdout, _, err := execute(t, "settings", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "mask = 11")
	assert.Contains(t, stdout, "clock_frequency = 1000000")
	assert.Contains(t, stdout, `commands = "8580000b8a861d00"`)
	assert.Contains(t, stdout, `latency_timer = "16ms"`)

	stdout, _, err = execute(t, "settings", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "in_transfer_size: 4096")
	assert.NotContains(t, stdout, "clock_frequency")

	_, _, err = execute(t, "settings", "--format", "xml")
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := execute(t, "settings", "--log-level", "loud")
	assert.Error(t, err)
}
