// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsim

import (
	"fmt"
	"strings"
)

// A CycleVector maps signal names to their values for one clock cycle.
//
type CycleVector map[string]Value

// A Frame is a read-only view of signal values presented to guard and next
// functions: the cycle's inputs plus register state. Guards see the
// pre-edge register state; drive functions see the post-edge state.
//
type Frame struct {
	m   *Model
	in  CycleVector
	reg []Value
}

// Get returns the value of an input or register. It panics on unknown or
// unreadable names: circuit functions address signals statically, so a bad
// name is a bug in the circuit definition, not a run-time condition.
// Callers must not modify the returned value.
//
func (f *Frame) Get(name string) Value {
	i, ok := f.m.sigIdx[name]
	if !ok {
		panic("unknown signal " + name)
	}
	switch f.m.sigs[i].Kind {
	case KindInput:
		return f.in[name]
	case KindRegister:
		return f.reg[f.m.regIdx[name]]
	}
	panic("signal " + name + " is not readable")
}

// Bit returns the value of a 1-bit input or register.
//
func (f *Frame) Bit(name string) Bit {
	v := f.Get(name)
	if len(v) != 1 {
		panic("signal " + name + " is not 1 bit wide")
	}
	return v[0]
}

// Fired records which rule determined a register's post-edge value.
//
type Fired struct {
	Reg   string // register name
	Rule  string // rule name, "reset", or "hold" when no guard held
	Undef bool   // guard was unknown, register forced to x
}

// An Alt is one alternate result of an ambiguous edge: the observable
// vector produced when the don't-care choice goes the other way.
//
type Alt struct {
	Rule string // rule choice that differs from the primary outcome
	Out  CycleVector
	regs []Value
}

// An Outcome describes the result of one clock edge. Out holds the
// post-edge value of every observable signal. Fired lists, per register in
// declaration order, the rule that produced its value. On an edge where the
// guards of a don't-care rule pair hold simultaneously, Alts holds the
// outcomes of the alternate rule choices and the primary outcome follows
// rule priority.
//
type Outcome struct {
	Out   CycleVector
	Fired []Fired
	Alts  []Alt
}

// Ambiguous returns true if the edge had more than one legal outcome.
//
func (o *Outcome) Ambiguous() bool { return len(o.Alts) > 0 }

// A Stepper owns the mutable register state of one simulation run and
// advances it one clock edge at a time. Steppers are not safe for
// concurrent use; run one per goroutine, they can share the sealed model.
//
type Stepper struct {
	m    *Model
	regs []Value
}

// NewStepper returns a Stepper for a sealed model, with all registers at
// their reset value. It panics if the model is not sealed.
//
func NewStepper(m *Model) *Stepper {
	if !m.Sealed() {
		panic("model is not sealed")
	}
	s := &Stepper{m: m, regs: make([]Value, len(m.regs))}
	s.Reset()
	return s
}

// Model returns the model driven by this Stepper.
//
func (s *Stepper) Model() *Model { return s.m }

// Reset loads every register with its declared reset value. Resetting an
// already reset Stepper is a no-op.
//
func (s *Stepper) Reset() {
	for i, r := range s.m.regs {
		s.regs[i] = r.reset.Copy()
	}
}

// Reg returns a copy of a register's current value.
//
func (s *Stepper) Reg(name string) Value {
	i, ok := s.m.regIdx[name]
	if !ok {
		panic("unknown register " + name)
	}
	return s.regs[i].Copy()
}

func (s *Stepper) checkWidth(what string, v Value, want int) {
	if len(v) != want {
		panic(fmt.Sprintf("%s returned %d bits, want %d", what, len(v), want))
	}
}

// Step applies one clock edge. Every register's next value is computed from
// the same pre-edge snapshot, then all registers commit at once, so the
// result does not depend on register declaration order. The supplied vector
// must contain every declared input at its declared width; Step panics
// otherwise (trace-shape problems are caught with proper errors before
// stepping, see Runner).
//
func (s *Stepper) Step(in CycleVector) Outcome {
	for _, sig := range s.m.sigs {
		if sig.Kind != KindInput {
			continue
		}
		v, ok := in[sig.Name]
		if !ok {
			panic("missing input " + sig.Name)
		}
		if len(v) != sig.Width {
			panic(fmt.Sprintf("input %s is %d bits, want %d", sig.Name, len(v), sig.Width))
		}
	}

	pre := &Frame{m: s.m, in: in, reg: s.regs}
	next := make([]Value, len(s.m.regs))
	fired := make([]Fired, len(s.m.regs))
	var extras [][]*rule // per register, fired don't-care alternates to the winner

	for i, r := range s.m.regs {
		name := s.m.sigs[r.sig].Name
		width := s.m.sigs[r.sig].Width

		if r.rst != nil {
			switch g := r.rst.guard(pre).capture(); g {
			case Hi:
				next[i] = r.reset.Copy()
				fired[i] = Fired{Reg: name, Rule: "reset"}
				continue
			case Undef:
				next[i] = Undefined(width)
				fired[i] = Fired{Reg: name, Rule: "reset", Undef: true}
				continue
			}
		}

		var winner *rule
		var alt []*rule
		undef := false
		for _, rl := range r.rules {
			g := rl.guard(pre).capture()
			if winner == nil {
				if g == Undef {
					// cannot decide whether this rule fires, so the
					// register's next value is unknown
					next[i] = Undefined(width)
					fired[i] = Fired{Reg: name, Rule: rl.name, Undef: true}
					undef = true
					break
				}
				if g == Hi {
					winner = rl
				}
				continue
			}
			// a lower priority rule matters only if the circuit declares
			// its overlap with the winner a don't-care
			if g == Hi && s.m.dontc[winner.name][rl.name] {
				alt = append(alt, rl)
			}
		}
		if undef {
			continue
		}
		if winner == nil {
			next[i] = s.regs[i].Copy()
			fired[i] = Fired{Reg: name, Rule: "hold"}
			continue
		}
		v := winner.next(pre)
		s.checkWidth("rule "+winner.name, v, width)
		next[i] = v.Capture()
		fired[i] = Fired{Reg: name, Rule: winner.name}
		if len(alt) > 0 {
			if extras == nil {
				extras = make([][]*rule, len(s.m.regs))
			}
			extras[i] = alt
		}
	}

	var alts []Alt
	if extras != nil {
		alts = s.alternates(pre, next, extras)
	}

	s.regs = next
	out := s.outputsFor(s.regs, in)
	return Outcome{Out: out, Fired: fired, Alts: alts}
}

// alternates expands the don't-care choices of an edge into the full set of
// alternate register states. With several ambiguous registers on one edge
// the choices combine, so the result is every combination that differs from
// the primary outcome.
//
func (s *Stepper) alternates(pre *Frame, primary []Value, extras [][]*rule) []Alt {
	type state struct {
		rules []string
		regs  []Value
	}
	states := []state{{regs: primary}}
	for i, alt := range extras {
		if alt == nil {
			continue
		}
		width := s.m.sigs[s.m.regs[i].sig].Width
		cur := states
		for _, rl := range alt {
			v := rl.next(pre)
			s.checkWidth("rule "+rl.name, v, width)
			v = v.Capture()
			for _, st := range cur {
				regs := make([]Value, len(st.regs))
				copy(regs, st.regs)
				regs[i] = v
				rules := append(append([]string(nil), st.rules...), rl.name)
				states = append(states, state{rules: rules, regs: regs})
			}
		}
	}

	alts := make([]Alt, 0, len(states)-1)
	for _, st := range states[1:] {
		alts = append(alts, Alt{
			Rule: strings.Join(st.rules, "+"),
			Out:  s.outputsFor(st.regs, pre.in),
			regs: st.regs,
		})
	}
	return alts
}

// outputsFor renders the observable vector for the given post-edge register
// state.
//
func (s *Stepper) outputsFor(regs []Value, in CycleVector) CycleVector {
	post := &Frame{m: s.m, in: in, reg: regs}
	out := make(CycleVector, len(s.m.outs))
	for _, o := range s.m.outs {
		sig := s.m.sigs[o.sig]
		if o.reg >= 0 {
			out[sig.Name] = regs[o.reg].Copy()
			continue
		}
		v := o.drive(post)
		s.checkWidth("output "+sig.Name, v, sig.Width)
		out[sig.Name] = v
	}
	return out
}
