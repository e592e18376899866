package seqsim

import (
	"sort"

	"github.com/pkg/errors"
)

// Malformed trace errors. Both mark the affected scenario inconclusive
// without stopping the evaluation of other scenarios.
//
var (
	// ErrSegmentLengthMismatch is returned when a segment's declared cycle
	// count disagrees with the length of one of its per-signal sequences,
	// or when the input and output sides of a scenario disagree on
	// segmentation.
	ErrSegmentLengthMismatch = errors.New("segment length mismatch")
	// ErrSignalSetMismatch is returned when the signals recorded in a trace
	// do not match the circuit's declared signals, in name or in width.
	ErrSignalSetMismatch = errors.New("signal set mismatch")
)

// A Segment is a contiguous run of clock cycles sharing one signal set.
// Data maps each signal name to its per-cycle values; every sequence must
// have exactly Cycles entries.
//
type Segment struct {
	Cycles int
	Data   map[string][]Value
}

// vector builds the CycleVector for one cycle of the segment.
//
func (sg *Segment) vector(cyc int) CycleVector {
	v := make(CycleVector, len(sg.Data))
	for name, seq := range sg.Data {
		v[name] = seq[cyc]
	}
	return v
}

// signals returns the segment's signal names in lexical order.
//
func (sg *Segment) signals() []string {
	s := make([]string, 0, len(sg.Data))
	for name := range sg.Data {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

// A Trace is an ordered sequence of segments.
//
type Trace []Segment

// Cycles returns the total cycle count over all segments.
//
func (t Trace) Cycles() int {
	n := 0
	for i := range t {
		n += t[i].Cycles
	}
	return n
}

// validate checks the internal consistency of the trace: declared cycle
// counts against sequence lengths, and a uniform signal set across
// segments.
//
func (t Trace) validate() error {
	if len(t) == 0 {
		return errors.Wrap(ErrSegmentLengthMismatch, "empty trace")
	}
	for i := range t {
		sg := &t[i]
		if sg.Cycles < 0 {
			return errors.Wrapf(ErrSegmentLengthMismatch, "segment %d: negative cycle count %d", i, sg.Cycles)
		}
		if len(sg.Data) == 0 {
			return errors.Wrapf(ErrSignalSetMismatch, "segment %d: no signals", i)
		}
		for name, seq := range sg.Data {
			if len(seq) != sg.Cycles {
				return errors.Wrapf(ErrSegmentLengthMismatch,
					"segment %d: signal %q has %d cycles, declared %d", i, name, len(seq), sg.Cycles)
			}
		}
		if i > 0 {
			if err := sameSignals(&t[0], sg); err != nil {
				return errors.Wrapf(err, "segment %d", i)
			}
		}
	}
	return nil
}

func sigNames(sigs []Signal) []string {
	n := make([]string, len(sigs))
	for i := range sigs {
		n[i] = sigs[i].Name
	}
	return n
}

func sameSignals(a, b *Segment) error {
	if len(a.Data) != len(b.Data) {
		return errors.Wrap(ErrSignalSetMismatch, "segments differ")
	}
	for name := range a.Data {
		if _, ok := b.Data[name]; !ok {
			return errors.Wrapf(ErrSignalSetMismatch, "signal %q missing", name)
		}
	}
	return nil
}

// conform checks the trace's signal set against a declared signal list:
// exactly the declared names must be present, and every value must have the
// declared width. A width disagreement is a signal set mismatch, since
// width is part of a signal's identity.
//
func (t Trace) conform(sigs []Signal) error {
	for i := range t {
		sg := &t[i]
		if len(sg.Data) != len(sigs) {
			return errors.Wrapf(ErrSignalSetMismatch,
				"segment %d: got signals %v, want %v", i, sg.signals(), sigNames(sigs))
		}
		for _, sig := range sigs {
			seq, ok := sg.Data[sig.Name]
			if !ok {
				return errors.Wrapf(ErrSignalSetMismatch, "segment %d: signal %q missing", i, sig.Name)
			}
			for c, v := range seq {
				if len(v) != sig.Width {
					return errors.Wrapf(ErrSignalSetMismatch,
						"segment %d: signal %q cycle %d: got %d bits, want %d", i, sig.Name, c, len(v), sig.Width)
				}
			}
		}
	}
	return nil
}

// A Scenario is a named pair of parallel traces: the recorded inputs fed to
// a circuit and the outputs it is expected to produce.
//
type Scenario struct {
	Name    string
	Inputs  Trace
	Outputs Trace
}
