// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package seqtest provides utility functions for testing circuit models.
//
package seqtest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/seqsim"
)

// A GoldenFn is a trusted software rendition of a circuit: called once per
// clock edge with that cycle's inputs, it returns the expected post-edge
// value of every observable signal. Implementations keep their own state
// between calls.
//
type GoldenFn func(in seqsim.CycleVector) seqsim.CycleVector

// CompareModel drives a model and a golden function with identical stimulus
// and fails the test at their first divergence. The stimulus is an all zero
// cycle, an all one cycle, then the given number of random known input
// cycles from a fixed seed, so failures reproduce.
//
func CompareModel(t *testing.T, m *seqsim.Model, golden GoldenFn, cycles int) {
	t.Helper()

	st := seqsim.NewStepper(m)
	rng := rand.New(rand.NewSource(1))
	ins := m.Inputs()
	outs := m.Outputs()

	fill := func(bit func() seqsim.Bit) seqsim.CycleVector {
		in := make(seqsim.CycleVector, len(ins))
		for _, s := range ins {
			v := make(seqsim.Value, s.Width)
			for i := range v {
				v[i] = bit()
			}
			in[s.Name] = v
		}
		return in
	}

	for cyc := 0; cyc < cycles+2; cyc++ {
		var in seqsim.CycleVector
		switch cyc {
		case 0:
			in = fill(func() seqsim.Bit { return seqsim.Lo })
		case 1:
			in = fill(func() seqsim.Bit { return seqsim.Hi })
		default:
			in = fill(func() seqsim.Bit {
				if rng.Int63()&(1<<62) != 0 {
					return seqsim.Hi
				}
				return seqsim.Lo
			})
		}
		got := st.Step(in).Out
		want := golden(in)
		for _, s := range outs {
			if !got[s.Name].Equal(want[s.Name]) {
				t.Fatalf("cycle %d: %s: golden %s, model %s\ninputs: %s",
					cyc, s.Name, want[s.Name], got[s.Name], inString(ins, in))
			}
		}
	}
}

func inString(sigs []seqsim.Signal, in seqsim.CycleVector) string {
	var b strings.Builder
	for _, s := range sigs {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Name)
		b.WriteByte('=')
		b.WriteString(in[s.Name].String())
	}
	return b.String()
}
