package seqsim

import (
	"sort"

	"github.com/pkg/errors"
)

// Model construction errors.
//
var (
	// ErrDuplicateSignal is returned by Declare when a signal name is
	// already in use.
	ErrDuplicateSignal = errors.New("duplicate signal")
	// ErrUnknownRegister is returned by Rule, Reset and Expose when the
	// named register has not been declared.
	ErrUnknownRegister = errors.New("unknown register")
)

// Kind describes the role of a signal in a circuit.
//
type Kind byte

// Signal kinds.
//
const (
	KindInput Kind = iota
	KindOutput
	KindRegister
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	}
	return "register"
}

// A Signal describes a named input, output or register of a circuit.
//
type Signal struct {
	Name  string
	Width int
	Kind  Kind
}

// A GuardFn decides whether an update rule applies on a clock edge. It is
// evaluated against the pre-edge frame and returns Hi when the rule fires,
// Lo when the rule is skipped. An unknown result poisons the register for
// that edge (see Stepper).
//
type GuardFn func(f *Frame) Bit

// A NextFn computes a new value for a register or a driven output from a
// frame. The returned value must have the width of the target signal.
//
type NextFn func(f *Frame) Value

type rule struct {
	name  string
	prio  int
	guard GuardFn
	next  NextFn
}

type regDef struct {
	sig   int // index in Model.sigs
	reset Value
	rst   *rule   // absolute priority reset rule, nil if none
	rules []*rule // priority order once sealed
}

// An output is either backed by a register (reg >= 0) or driven by a
// combinational function of the post-edge frame.
type outDef struct {
	sig   int
	reg   int
	drive NextFn
}

// A Model is a declarative description of a small synchronous circuit: its
// signals, register reset values and prioritized update rules. A Model is
// built once, sealed, and then shared read-only between any number of
// concurrent evaluations; all mutable run state lives in Steppers.
//
type Model struct {
	name    string
	sigs    []Signal
	sigIdx  map[string]int
	regs    []*regDef
	regIdx  map[string]int
	ruleReg map[string]int // rule name -> register ordinal
	pairs   [][2]string    // don't-care rule name pairs, resolved at Seal
	dontc   map[string]map[string]bool
	outs    []outDef
	sealed  bool
}

// New returns an empty model with the given name.
//
func New(name string) *Model {
	return &Model{
		name:    name,
		sigIdx:  make(map[string]int),
		regIdx:  make(map[string]int),
		ruleReg: make(map[string]int),
	}
}

// Name returns the circuit name.
//
func (m *Model) Name() string { return m.name }

func (m *Model) mutable() {
	if m.sealed {
		panic("model is sealed")
	}
}

// Declare registers a signal. A register declared this way resets to all
// bits undefined; use Register to set an explicit reset value. Declare
// fails with ErrDuplicateSignal if the name is already in use.
//
func (m *Model) Declare(name string, width int, kind Kind) error {
	m.mutable()
	if name == "" {
		return errors.New("empty signal name")
	}
	if width < 1 {
		return errors.Errorf("signal %q: invalid width %d", name, width)
	}
	if _, ok := m.sigIdx[name]; ok {
		return errors.Wrap(ErrDuplicateSignal, name)
	}
	m.sigIdx[name] = len(m.sigs)
	m.sigs = append(m.sigs, Signal{Name: name, Width: width, Kind: kind})
	if kind == KindRegister {
		m.regIdx[name] = len(m.regs)
		m.regs = append(m.regs, &regDef{sig: len(m.sigs) - 1, reset: Undefined(width)})
	}
	return nil
}

// Input declares an input signal.
//
func (m *Model) Input(name string, width int) error {
	return m.Declare(name, width, KindInput)
}

// Output declares an output signal. The output must be given a source with
// Drive before the model is sealed.
//
func (m *Model) Output(name string, width int) error {
	if err := m.Declare(name, width, KindOutput); err != nil {
		return err
	}
	m.outs = append(m.outs, outDef{sig: len(m.sigs) - 1, reg: -1})
	return nil
}

// Register declares a register with an explicit reset value.
//
func (m *Model) Register(name string, width int, reset Value) error {
	if len(reset) != width {
		return errors.Errorf("register %q: reset value %q does not match width %d", name, reset, width)
	}
	if err := m.Declare(name, width, KindRegister); err != nil {
		return err
	}
	m.regs[m.regIdx[name]].reset = reset.Capture()
	return nil
}

// Rule appends a guarded update rule for a register. Rules for one register
// are evaluated in ascending priority order against the pre-edge frame; the
// first whose guard holds determines the register's next value, and the
// register holds its current value when no guard holds. Rules with equal
// priority keep their insertion order. Rule names tag verdicts and must be
// unique within the model.
//
// Rule fails with ErrUnknownRegister if the register is not declared.
//
func (m *Model) Rule(register, name string, priority int, guard GuardFn, next NextFn) error {
	m.mutable()
	r, ok := m.regIdx[register]
	if !ok {
		return errors.Wrap(ErrUnknownRegister, register)
	}
	if name == "" {
		return errors.Errorf("register %q: empty rule name", register)
	}
	if name == "reset" {
		return errors.New(`rule name "reset" is reserved, use Reset`)
	}
	if _, ok := m.ruleReg[name]; ok {
		return errors.Errorf("duplicate rule name %q", name)
	}
	if guard == nil || next == nil {
		return errors.Errorf("rule %q: nil guard or next function", name)
	}
	m.ruleReg[name] = r
	m.regs[r].rules = append(m.regs[r].rules, &rule{name: name, prio: priority, guard: guard, next: next})
	return nil
}

// Reset installs a synchronous reset rule for a register: when guard holds,
// the register loads its declared reset value regardless of any other rule.
// The rule is tagged "reset" in outcomes.
//
func (m *Model) Reset(register string, guard GuardFn) error {
	m.mutable()
	r, ok := m.regIdx[register]
	if !ok {
		return errors.Wrap(ErrUnknownRegister, register)
	}
	if m.regs[r].rst != nil {
		return errors.Errorf("register %q: reset rule already set", register)
	}
	if guard == nil {
		return errors.Errorf("register %q: nil reset guard", register)
	}
	m.regs[r].rst = &rule{name: "reset", guard: guard}
	return nil
}

// Expose adds a register to the output vector under its own name.
//
func (m *Model) Expose(register string) error {
	m.mutable()
	r, ok := m.regIdx[register]
	if !ok {
		return errors.Wrap(ErrUnknownRegister, register)
	}
	for _, o := range m.outs {
		if o.reg == r {
			return errors.Errorf("register %q already exposed", register)
		}
	}
	m.outs = append(m.outs, outDef{sig: m.regs[r].sig, reg: r})
	return nil
}

// Drive binds a declared output signal to a combinational function of the
// post-edge frame (committed registers plus the cycle's inputs).
//
func (m *Model) Drive(output string, next NextFn) error {
	m.mutable()
	i, ok := m.sigIdx[output]
	if !ok || m.sigs[i].Kind != KindOutput {
		return errors.Errorf("unknown output %q", output)
	}
	if next == nil {
		return errors.Errorf("output %q: nil drive function", output)
	}
	for j := range m.outs {
		if m.outs[j].sig == i {
			if m.outs[j].drive != nil {
				return errors.Errorf("output %q already driven", output)
			}
			m.outs[j].drive = next
			return nil
		}
	}
	panic("declared output missing from output list")
}

// DontCare declares that when the guards of rules a and b hold on the same
// edge, the circuit may follow either rule. The checker then accepts both
// outcomes for that edge instead of enforcing rule priority. Both rules
// must target the same register. Name resolution is deferred to Seal, so
// DontCare may be called before the rules are added.
//
func (m *Model) DontCare(a, b string) error {
	m.mutable()
	if a == b {
		return errors.Errorf("rule %q paired with itself", a)
	}
	m.pairs = append(m.pairs, [2]string{a, b})
	return nil
}

// Seal validates the model and freezes it. Once sealed, a model is
// immutable and safe for concurrent use.
//
func (m *Model) Seal() error {
	m.mutable()
	if len(m.sigs) == 0 {
		return errors.New("model has no signals")
	}
	if len(m.outs) == 0 {
		return errors.New("model has no outputs")
	}
	for _, o := range m.outs {
		if o.reg < 0 && o.drive == nil {
			return errors.Errorf("output %q has no source", m.sigs[o.sig].Name)
		}
	}
	for _, r := range m.regs {
		sort.SliceStable(r.rules, func(i, j int) bool { return r.rules[i].prio < r.rules[j].prio })
	}
	m.dontc = make(map[string]map[string]bool)
	for _, p := range m.pairs {
		ra, oka := m.ruleReg[p[0]]
		rb, okb := m.ruleReg[p[1]]
		if !oka || !okb {
			return errors.Errorf("don't-care pair (%q, %q): unknown rule", p[0], p[1])
		}
		if ra != rb {
			return errors.Errorf("don't-care pair (%q, %q): rules target different registers", p[0], p[1])
		}
		if m.dontc[p[0]] == nil {
			m.dontc[p[0]] = make(map[string]bool)
		}
		if m.dontc[p[1]] == nil {
			m.dontc[p[1]] = make(map[string]bool)
		}
		m.dontc[p[0]][p[1]] = true
		m.dontc[p[1]][p[0]] = true
	}
	m.sealed = true
	return nil
}

// Sealed returns true once Seal has succeeded.
//
func (m *Model) Sealed() bool { return m.sealed }

// Signals returns all declared signals in declaration order.
//
func (m *Model) Signals() []Signal {
	s := make([]Signal, len(m.sigs))
	copy(s, m.sigs)
	return s
}

// Inputs returns the input signals in declaration order.
//
func (m *Model) Inputs() []Signal {
	var s []Signal
	for _, sig := range m.sigs {
		if sig.Kind == KindInput {
			s = append(s, sig)
		}
	}
	return s
}

// Outputs returns the observable signals (exposed registers and driven
// outputs) in the order they were added to the output vector. This order is
// the tie-break order for mismatch reporting.
//
func (m *Model) Outputs() []Signal {
	s := make([]Signal, len(m.outs))
	for i, o := range m.outs {
		s[i] = m.sigs[o.sig]
	}
	return s
}
