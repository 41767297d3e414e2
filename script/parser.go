package script

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/moffa90/go-mpsse/mpsse"
	"github.com/moffa90/go-mpsse/static"
)

// Script is a parsed command script.
type Script struct {
	Commands []static.Command

	// Lines holds the source line of each command
	Lines []int
}

// Compile compiles the script's commands.
func (s *Script) Compile() (*static.Program, error) {
	return static.Compile(s.Commands...)
}

// Parse parses a command script from the given file path.
//
// Example:
//
//	s, err := script.Parse("read_id.mpsse")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prog, err := s.Compile()
func Parse(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a command script from any io.Reader.
func ParseReader(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	s := &Script{}
	names := make(map[string]int)

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if name := cmd.Name(); name != "" {
			if prev, dup := names[name]; dup {
				return nil, fmt.Errorf("line %d: name %q already used on line %d", lineNum, name, prev)
			}
			names[name] = lineNum
		}

		s.Commands = append(s.Commands, cmd)
		s.Lines = append(s.Lines, lineNum)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return s, nil
}

// parseLine parses one command with an optional trailing "as NAME".
func parseLine(fields []string) (static.Command, error) {
	var name string
	if n := len(fields); n >= 3 && fields[n-2] == "as" {
		name = fields[n-1]
		fields = fields[:n-2]
	}

	op, args := fields[0], fields[1:]
	d, ok := directives[op]
	if !ok {
		return static.Command{}, fmt.Errorf("unknown command %q", op)
	}
	if len(args) < d.minArgs || len(args) > d.maxArgs {
		return static.Command{}, fmt.Errorf("%s: got %d arguments, expected %s", op, len(args), d.usage)
	}

	cmd, err := d.parse(args)
	if err != nil {
		return static.Command{}, fmt.Errorf("%s: %w", op, err)
	}

	if name != "" {
		if !d.reads {
			return static.Command{}, fmt.Errorf("%s: produces no response and cannot be named", op)
		}
		cmd = cmd.As(name)
	}

	return cmd, nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

func parseCount(s string, max int) (int, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if v > uint64(max) {
		return 0, fmt.Errorf("count %d exceeds maximum %d", v, max)
	}
	return int(v), nil
}

// parseData decodes a hex payload such as "9f0010" or "0x9F0010".
func parseData(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	if len(data) > mpsse.MaxDataLen {
		return nil, fmt.Errorf("payload of %d bytes exceeds maximum %d", len(data), mpsse.MaxDataLen)
	}
	return data, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "high":
		return true, nil
	case "0", "false", "low":
		return false, nil
	}
	return false, fmt.Errorf("invalid level %q", s)
}

func lookup[M ~byte](table map[string]M, s string) (M, error) {
	m, ok := table[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown mode %q", s)
	}
	return m, nil
}
