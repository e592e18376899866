package seqsim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A Mismatch pinpoints the first divergence between a circuit's simulated
// behavior and a recorded trace. Cycle is the absolute 0-based cycle index
// over the whole scenario; Segment is the index of the expected-output
// segment containing that cycle. Expected is the recorded value, Actual the
// simulated one.
//
type Mismatch struct {
	Segment  int    `json:"segment"`
	Cycle    int    `json:"cycle"`
	Signal   string `json:"signal"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason"`
}

func (m *Mismatch) String() string {
	return fmt.Sprintf("cycle %d (segment %d): %s: expected %s, got %s: %s",
		m.Cycle, m.Segment, m.Signal, m.Expected, m.Actual, m.Reason)
}

// A Verdict is the result of checking one scenario. A scenario that could
// not be judged because of a malformed trace has Err set and Matches false;
// a behavioral divergence has Mismatch set instead. The two never mix, so a
// broken fixture cannot masquerade as a circuit bug.
//
type Verdict struct {
	Scenario string    `json:"scenario"`
	Matches  bool      `json:"matches"`
	Mismatch *Mismatch `json:"firstMismatch,omitempty"`
	Err      error     `json:"-"`
}

// Inconclusive returns true if the scenario could not be judged.
//
func (v *Verdict) Inconclusive() bool { return v.Err != nil }

// A Checker judges recorded scenarios against one circuit model. It is not
// safe for concurrent use; create one per goroutine.
//
type Checker struct {
	r *Runner
}

// NewChecker returns a Checker for a sealed model.
//
func NewChecker(m *Model) *Checker {
	return &Checker{r: NewRunner(m)}
}

// Check resets the circuit, replays the scenario's recorded inputs and
// compares the simulated outputs with the recorded ones in lock-step, by
// absolute cycle and, within a cycle, in output declaration order. The
// first divergence wins; repeated runs of the same scenario yield identical
// verdicts.
//
// Comparison is literal except on an ambiguous edge, where the recorded
// vector is accepted if it matches any legal outcome; the simulation then
// continues from the accepted alternative's register state. Unknown levels
// compare structurally: a simulated x (from an x or z input the signal
// depends on) requires a recorded x, and a concrete recorded 0 or 1 in its
// place is a divergence.
//
func (c *Checker) Check(sc *Scenario) Verdict {
	v := Verdict{Scenario: sc.Name}
	m := c.r.st.Model()

	if err := sc.Outputs.validate(); err != nil {
		v.Err = errors.Wrapf(err, "scenario %q: outputs", sc.Name)
		return v
	}
	if err := sc.Outputs.conform(m.Outputs()); err != nil {
		v.Err = errors.Wrapf(err, "scenario %q: outputs", sc.Name)
		return v
	}
	if in, out := sc.Inputs.Cycles(), sc.Outputs.Cycles(); in != out {
		v.Err = errors.Wrapf(ErrSegmentLengthMismatch,
			"scenario %q: %d input cycles, %d output cycles", sc.Name, in, out)
		return v
	}

	sigs := m.Outputs()
	var mm *Mismatch
	oseg, orel := 0, 0 // position in the expected output trace

	err := c.r.run(sc.Inputs, func(_, cycle int, o *Outcome) bool {
		for orel >= sc.Outputs[oseg].Cycles {
			oseg++
			orel = 0
		}
		rec := sc.Outputs[oseg].vector(orel)

		if o.Ambiguous() {
			if !vectorEqual(o.Out, rec, sigs) {
				alt := matchAlt(o, rec, sigs)
				if alt == nil {
					name, exp, act := firstDiff(o.Out, rec, sigs)
					mm = &Mismatch{
						Segment: oseg, Cycle: cycle, Signal: name,
						Expected: exp, Actual: act,
						Reason: fmt.Sprintf("%s; edge is ambiguous but no alternative (%s) matches either",
							reason(m, o, name), altNames(o)),
					}
					return false
				}
				// the recorded trace followed the other legal choice;
				// resync so later cycles are judged against it
				c.r.st.regs = alt.regs
			}
			orel++
			return true
		}

		for _, s := range sigs {
			sim := o.Out[s.Name]
			if !sim.Equal(rec[s.Name]) {
				mm = &Mismatch{
					Segment: oseg, Cycle: cycle, Signal: s.Name,
					Expected: rec[s.Name].String(), Actual: sim.String(),
					Reason: reason(m, o, s.Name),
				}
				return false
			}
		}
		orel++
		return true
	})
	if err != nil {
		v.Err = errors.Wrapf(err, "scenario %q", sc.Name)
		return v
	}
	if mm != nil {
		v.Mismatch = mm
		return v
	}
	v.Matches = true
	return v
}

func vectorEqual(a, b CycleVector, sigs []Signal) bool {
	for _, s := range sigs {
		if !a[s.Name].Equal(b[s.Name]) {
			return false
		}
	}
	return true
}

func matchAlt(o *Outcome, rec CycleVector, sigs []Signal) *Alt {
	for i := range o.Alts {
		if vectorEqual(o.Alts[i].Out, rec, sigs) {
			return &o.Alts[i]
		}
	}
	return nil
}

func firstDiff(out, rec CycleVector, sigs []Signal) (name, expected, actual string) {
	for _, s := range sigs {
		if !out[s.Name].Equal(rec[s.Name]) {
			return s.Name, rec[s.Name].String(), out[s.Name].String()
		}
	}
	panic("no differing signal")
}

func altNames(o *Outcome) string {
	n := make([]string, len(o.Alts))
	for i := range o.Alts {
		n[i] = o.Alts[i].Rule
	}
	return strings.Join(n, ", ")
}

// reason explains which rule or condition produced a signal's simulated
// value on this edge.
//
func reason(m *Model, o *Outcome, name string) string {
	for _, od := range m.outs {
		if m.sigs[od.sig].Name != name {
			continue
		}
		if od.reg < 0 {
			return "combinational output"
		}
		f := o.Fired[od.reg]
		switch {
		case f.Undef:
			return fmt.Sprintf("guard of rule %q undefined, register %s forced to x", f.Rule, f.Reg)
		case f.Rule == "hold":
			return fmt.Sprintf("no rule fired, register %s held its value", f.Reg)
		default:
			return fmt.Sprintf("rule %q fired", f.Rule)
		}
	}
	return "unknown signal"
}
