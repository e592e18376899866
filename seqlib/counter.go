// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqlib

import "github.com/db47h/seqsim"

// UpCounter8 returns an 8-bit up counter with synchronous reset.
//
//	Inputs: reset
//	Outputs: q[8]
//	Function: q(t+1) = reset ? 0 : q+1 mod 256
//
func UpCounter8() *seqsim.Model {
	m := seqsim.New("upcounter8")
	must(m.Input("reset", 1))
	must(m.Register("q", 8, seqsim.FromUint(0, 8)))
	must(m.Expose("q"))
	must(m.Reset("q", func(f *seqsim.Frame) seqsim.Bit { return f.Bit("reset") }))
	must(m.Rule("q", "up", 0,
		func(f *seqsim.Frame) seqsim.Bit { return seqsim.Hi },
		func(f *seqsim.Frame) seqsim.Value { return f.Get("q").Inc() }))
	must(m.Seal())
	return m
}
