// Package static builds MPSSE command streams whose size and read layout are
// known before any buffer is allocated.
//
// A sequence is declared as a list of Commands. Measure walks the list once
// to compute the encoded size, the response length, and the response range of
// every command named with As. Compile measures, allocates exactly that many
// bytes, and encodes through the same mpsse encoders the dynamic
// mpsse.Builder uses, so both produce identical bytes for the same sequence.
//
//	var readID = static.MustCompile(
//	    static.SetGPIOLower(0x00, 0x0B),
//	    static.ClockDataOut(mpsse.DataOutMsbNeg, []byte{0x9F}),
//	    static.ClockDataIn(mpsse.DataInMsbPos, 3).As("id"),
//	    static.SetGPIOLower(0x08, 0x0B),
//	    static.SendImmediate(),
//	)
//
//	rx := make([]byte, readID.ReadLen)
//	r, _ := readID.Range("id")
//	id := r.Of(rx)
package static
