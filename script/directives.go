package script

import (
	"fmt"
	"strconv"

	"github.com/moffa90/go-mpsse/mpsse"
	"github.com/moffa90/go-mpsse/static"
)

// MaxLineLength is the longest script line accepted, enough for a full
// 65536-byte hex payload.
const MaxLineLength = 256 * 1024

type directive struct {
	minArgs, maxArgs int
	usage            string
	reads            bool
	parse            func(args []string) (static.Command, error)
}

// Edge names: pos samples or drives on the rising edge, neg on the falling.
var (
	dataOutModes = map[string]mpsse.DataOutMode{
		"msb_pos": mpsse.DataOutMsbPos, "msb_neg": mpsse.DataOutMsbNeg,
		"lsb_pos": mpsse.DataOutLsbPos, "lsb_neg": mpsse.DataOutLsbNeg,
	}
	dataInModes = map[string]mpsse.DataInMode{
		"msb_pos": mpsse.DataInMsbPos, "msb_neg": mpsse.DataInMsbNeg,
		"lsb_pos": mpsse.DataInLsbPos, "lsb_neg": mpsse.DataInLsbNeg,
	}
	dataModes = map[string]mpsse.DataMode{
		"msb_pos": mpsse.DataMsbPosIn, "msb_neg": mpsse.DataMsbNegIn,
		"lsb_pos": mpsse.DataLsbPosIn, "lsb_neg": mpsse.DataLsbNegIn,
	}
	bitsOutModes = map[string]mpsse.BitsOutMode{
		"msb_pos": mpsse.BitsOutMsbPos, "msb_neg": mpsse.BitsOutMsbNeg,
		"lsb_pos": mpsse.BitsOutLsbPos, "lsb_neg": mpsse.BitsOutLsbNeg,
	}
	bitsInModes = map[string]mpsse.BitsInMode{
		"msb_pos": mpsse.BitsInMsbPos, "msb_neg": mpsse.BitsInMsbNeg,
		"lsb_pos": mpsse.BitsInLsbPos, "lsb_neg": mpsse.BitsInLsbNeg,
	}
	bitsModes = map[string]mpsse.BitsMode{
		"msb_pos": mpsse.BitsMsbPosIn, "msb_neg": mpsse.BitsMsbNegIn,
		"lsb_pos": mpsse.BitsLsbPosIn, "lsb_neg": mpsse.BitsLsbNegIn,
	}
	tmsOutModes = map[string]mpsse.TMSOutMode{
		"pos": mpsse.TMSOutPosEdge, "neg": mpsse.TMSOutNegEdge,
	}
	// TMS edge first, then TDO edge.
	tmsModes = map[string]mpsse.TMSMode{
		"pos_pos": mpsse.TMSPosTMSPosTDO, "pos_neg": mpsse.TMSPosTMSNegTDO,
		"neg_pos": mpsse.TMSNegTMSPosTDO, "neg_neg": mpsse.TMSNegTMSNegTDO,
	}
)

var directives map[string]directive

func init() {
	directives = map[string]directive{
		"set_gpio_lower": gpioSet(static.SetGPIOLower),
		"set_gpio_upper": gpioSet(static.SetGPIOUpper),
		"gpio_lower":     {usage: "none", reads: true, parse: noArgs(static.GPIOLower)},
		"gpio_upper":     {usage: "none", reads: true, parse: noArgs(static.GPIOUpper)},

		"enable_loopback":  simple(static.EnableLoopback),
		"disable_loopback": simple(static.DisableLoopback),
		"enable_3phase":    simple(static.Enable3PhaseClocking),
		"disable_3phase":   simple(static.Disable3PhaseClocking),
		"enable_adaptive":  simple(static.EnableAdaptiveClocking),
		"disable_adaptive": simple(static.DisableAdaptiveClocking),
		"send_immediate":   simple(static.SendImmediate),
		"wait_on_io_high":  simple(static.WaitOnIOHigh),
		"wait_on_io_low":   simple(static.WaitOnIOLow),

		"set_clock": {
			minArgs: 1, maxArgs: 2, usage: "DIVISOR [div5|nodiv5]",
			parse: func(args []string) (static.Command, error) {
				v, err := strconv.ParseUint(args[0], 0, 16)
				if err != nil {
					return static.Command{}, fmt.Errorf("invalid divisor %q", args[0])
				}
				div := mpsse.DivideUnchanged
				if len(args) == 2 {
					switch args[1] {
					case "div5":
						div = mpsse.DivideBy5Enable
					case "nodiv5":
						div = mpsse.DivideBy5Disable
					default:
						return static.Command{}, fmt.Errorf("invalid divide setting %q", args[1])
					}
				}
				return static.SetClock(uint32(v), div), nil
			},
		},
		"set_frequency": {
			minArgs: 1, maxArgs: 1, usage: "HZ",
			parse: func(args []string) (static.Command, error) {
				hz, err := strconv.ParseUint(args[0], 0, 32)
				if err != nil {
					return static.Command{}, fmt.Errorf("invalid frequency %q", args[0])
				}
				div, clkdiv, err := mpsse.ClockDivisor(uint32(hz))
				if err != nil {
					return static.Command{}, err
				}
				return static.SetClock(div, clkdiv), nil
			},
		},

		"clock_data_out": {
			minArgs: 2, maxArgs: 2, usage: "MODE HEX",
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(dataOutModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, err := parseData(args[1])
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockDataOut(mode, data), nil
			},
		},
		"clock_data_in": {
			minArgs: 2, maxArgs: 2, usage: "MODE COUNT", reads: true,
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(dataInModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				n, err := parseCount(args[1], mpsse.MaxDataLen)
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockDataIn(mode, n), nil
			},
		},
		"clock_data": {
			minArgs: 2, maxArgs: 2, usage: "MODE HEX", reads: true,
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(dataModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, err := parseData(args[1])
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockData(mode, data), nil
			},
		},
		"clock_bits_out": {
			minArgs: 3, maxArgs: 3, usage: "MODE BYTE COUNT",
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(bitsOutModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, n, err := bitArgs(args[1], args[2], mpsse.MaxBitLen)
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockBitsOut(mode, data, n), nil
			},
		},
		"clock_bits_in": {
			minArgs: 2, maxArgs: 2, usage: "MODE COUNT", reads: true,
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(bitsInModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				n, err := parseCount(args[1], mpsse.MaxBitLen)
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockBitsIn(mode, n), nil
			},
		},
		"clock_bits": {
			minArgs: 3, maxArgs: 3, usage: "MODE BYTE COUNT", reads: true,
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(bitsModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, n, err := bitArgs(args[1], args[2], mpsse.MaxBitLen)
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockBits(mode, data, n), nil
			},
		},
		"clock_tms_out": {
			minArgs: 4, maxArgs: 4, usage: "MODE BYTE TDI COUNT",
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(tmsOutModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, tdi, n, err := tmsArgs(args[1:])
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockTMSOut(mode, data, tdi, n), nil
			},
		},
		"clock_tms": {
			minArgs: 4, maxArgs: 4, usage: "MODE BYTE TDI COUNT", reads: true,
			parse: func(args []string) (static.Command, error) {
				mode, err := lookup(tmsModes, args[0])
				if err != nil {
					return static.Command{}, err
				}
				data, tdi, n, err := tmsArgs(args[1:])
				if err != nil {
					return static.Command{}, err
				}
				return static.ClockTMS(mode, data, tdi, n), nil
			},
		},
	}
}

func simple(fn func() static.Command) directive {
	return directive{usage: "none", parse: noArgs(fn)}
}

func noArgs(fn func() static.Command) func([]string) (static.Command, error) {
	return func([]string) (static.Command, error) { return fn(), nil }
}

func gpioSet(fn func(state, direction byte) static.Command) directive {
	return directive{
		minArgs: 2, maxArgs: 2, usage: "STATE DIRECTION",
		parse: func(args []string) (static.Command, error) {
			state, err := parseByte(args[0])
			if err != nil {
				return static.Command{}, err
			}
			dir, err := parseByte(args[1])
			if err != nil {
				return static.Command{}, err
			}
			return fn(state, dir), nil
		},
	}
}

func bitArgs(data, count string, max int) (byte, int, error) {
	b, err := parseByte(data)
	if err != nil {
		return 0, 0, err
	}
	n, err := parseCount(count, max)
	if err != nil {
		return 0, 0, err
	}
	return b, n, nil
}

func tmsArgs(args []string) (byte, bool, int, error) {
	data, err := parseByte(args[0])
	if err != nil {
		return 0, false, 0, err
	}
	tdi, err := parseBool(args[1])
	if err != nil {
		return 0, false, 0, err
	}
	n, err := parseCount(args[2], mpsse.MaxTMSLen)
	if err != nil {
		return 0, false, 0, err
	}
	return data, tdi, n, nil
}
