// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqlib

import "github.com/db47h/seqsim"

// ShiftCount returns a 4-bit shift register doubling as a down counter.
//
//	Inputs: shift_ena, count_ena, data
//	Outputs: q[4]
//	Function: q(t+1) = shift_ena ? q<<1 | data : count_ena ? q-1 mod 16 : q
//
// Data is shifted in MSB-first: on a shift edge the current MSB exits and
// data enters at the least significant position. The counter wraps from
// 0000 to 1111. The surrounding system never asserts both enables at once,
// so that overlap is declared a don't-care pair and a checker accepts
// either rule's result.
//
func ShiftCount() *seqsim.Model {
	m := seqsim.New("shiftcount")
	must(m.Input("shift_ena", 1))
	must(m.Input("count_ena", 1))
	must(m.Input("data", 1))
	must(m.Register("q", 4, seqsim.MustValue("0000")))
	must(m.Expose("q"))
	must(m.Rule("q", "shift", 0,
		func(f *seqsim.Frame) seqsim.Bit { return f.Bit("shift_ena") },
		func(f *seqsim.Frame) seqsim.Value { return f.Get("q").ShiftInLSB(f.Bit("data")) }))
	must(m.Rule("q", "count", 1,
		func(f *seqsim.Frame) seqsim.Bit { return f.Bit("count_ena") },
		func(f *seqsim.Frame) seqsim.Value { return f.Get("q").Dec() }))
	must(m.DontCare("shift", "count"))
	must(m.Seal())
	return m
}
