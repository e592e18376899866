// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqlib

import "github.com/db47h/seqsim"

// XorAnd returns a purely combinational circuit.
//
//	Inputs: x, y
//	Outputs: z
//	Function: z = (x ^ y) & x
//
func XorAnd() *seqsim.Model {
	m := seqsim.New("xorand")
	must(m.Input("x", 1))
	must(m.Input("y", 1))
	must(m.Output("z", 1))
	must(m.Drive("z", func(f *seqsim.Frame) seqsim.Value {
		x := f.Bit("x")
		return seqsim.Value{x.Xor(f.Bit("y")).And(x)}
	}))
	must(m.Seal())
	return m
}
