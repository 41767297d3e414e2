// Package script parses text command scripts into static command lists.
//
// A script has one command per line. Blank lines are skipped and '#' starts
// a comment. Numbers accept Go prefixes (0x, 0b, 0o); payloads are hex.
// Commands that produce a response may end in "as NAME" so their response
// range can be looked up after compiling.
//
//	# read a SPI flash JEDEC id
//	set_frequency 1000000
//	set_gpio_lower 0x08 0x0b
//	set_gpio_lower 0x00 0x0b
//	clock_data_out msb_neg 9f
//	clock_data_in msb_pos 3 as id
//	set_gpio_lower 0x08 0x0b
//	send_immediate
//
// Byte and bit modes are msb_pos, msb_neg, lsb_pos and lsb_neg. clock_tms_out
// takes pos or neg; clock_tms takes the TMS edge then the TDO edge, as in
// pos_neg.
package script
