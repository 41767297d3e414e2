// Package mpssetest provides a simulated MPSSE engine for tests and examples.
//
// Device implements io.ReadWriter and executor.Resetter, so it can stand in
// for hardware behind executor.Stream:
//
//	dev := mpssetest.NewDevice()
//	dev.MISO.Write([]byte{0xEF, 0x40, 0x18})
//	ex := executor.NewStream(dev)
//
// The simulation covers what the encoder produces: GPIO reads reflect the
// configured direction and state, data reads consume MISO, full-duplex
// transfers echo their output while loopback is enabled, and unknown opcodes
// return the engine's bad-command response.
package mpssetest
