package seqsim

// A Runner feeds recorded input traces through a Stepper. The zero value is
// not usable; get one from NewRunner.
//
type Runner struct {
	st *Stepper
}

// NewRunner returns a Runner simulating the given model.
//
func NewRunner(m *Model) *Runner {
	return &Runner{st: NewStepper(m)}
}

// run validates the input trace, resets the circuit, then steps it once per
// cycle in segment order. fn is called after every edge with the segment
// index, the absolute 0-based cycle index and the edge's outcome; it
// returns false to stop the run early.
//
func (r *Runner) run(inputs Trace, fn func(seg, cycle int, o *Outcome) bool) error {
	if err := inputs.validate(); err != nil {
		return err
	}
	if err := inputs.conform(r.st.Model().Inputs()); err != nil {
		return err
	}
	r.st.Reset()
	cycle := 0
	for si := range inputs {
		sg := &inputs[si]
		for c := 0; c < sg.Cycles; c++ {
			o := r.st.Step(sg.vector(c))
			if !fn(si, cycle, &o) {
				return nil
			}
			cycle++
		}
	}
	return nil
}

// Run resets the circuit, feeds it the whole input trace and returns the
// simulated outputs, segmented on the same cycle boundaries as the inputs.
//
func (r *Runner) Run(inputs Trace) (Trace, error) {
	sigs := r.st.Model().Outputs()
	outs := make(Trace, len(inputs))
	for i := range inputs {
		d := make(map[string][]Value, len(sigs))
		for _, s := range sigs {
			d[s.Name] = make([]Value, 0, inputs[i].Cycles)
		}
		outs[i] = Segment{Cycles: inputs[i].Cycles, Data: d}
	}
	err := r.run(inputs, func(seg, cycle int, o *Outcome) bool {
		d := outs[seg].Data
		for _, s := range sigs {
			d[s.Name] = append(d[s.Name], o.Out[s.Name])
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}
