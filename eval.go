// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsim

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// An Evaluator checks a batch of scenarios against one circuit model.
//
// Workers is the number of goroutines evaluating scenarios. If less or
// equal to 0, the value of GOMAXPROCS will be used. Scenarios are
// independent (each starts from a freshly reset circuit) and verdicts are
// indexed by scenario, so the result does not depend on Workers.
//
type Evaluator struct {
	Model   *Model
	Workers int
}

// Evaluate returns one verdict per scenario, in scenario order.
//
func (e *Evaluator) Evaluate(scenarios []Scenario) *Report {
	vs := make([]Verdict, len(scenarios))

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	if workers <= 1 {
		ck := NewChecker(e.Model)
		for i := range scenarios {
			vs[i] = ck.Check(&scenarios[i])
		}
		return newReport(vs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for n := 0; n < workers; n++ {
		go func() {
			defer wg.Done()
			// each worker owns its Checker; the sealed model is shared
			ck := NewChecker(e.Model)
			for i := range jobs {
				vs[i] = ck.Check(&scenarios[i])
			}
		}()
	}
	for i := range scenarios {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return newReport(vs)
}

// A Report aggregates the verdicts of one evaluation.
//
type Report struct {
	Passed       int
	Failed       int
	Inconclusive int
	Verdicts     []Verdict
}

func newReport(vs []Verdict) *Report {
	r := &Report{Verdicts: vs}
	for i := range vs {
		switch {
		case vs[i].Inconclusive():
			r.Inconclusive++
		case vs[i].Matches:
			r.Passed++
		default:
			r.Failed++
		}
	}
	return r
}

// Ok returns true if every scenario passed.
//
func (r *Report) Ok() bool {
	return r.Failed == 0 && r.Inconclusive == 0
}

// WriteText writes a plain text summary of the report: the counts, then one
// line per non-passing scenario.
//
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "%d scenarios: %d passed, %d failed, %d inconclusive\n",
		len(r.Verdicts), r.Passed, r.Failed, r.Inconclusive)
	for i := range r.Verdicts {
		v := &r.Verdicts[i]
		switch {
		case v.Inconclusive():
			fmt.Fprintf(w, "INCONCLUSIVE %s: %v\n", v.Scenario, v.Err)
		case !v.Matches:
			fmt.Fprintf(w, "FAIL %s: %s\n", v.Scenario, v.Mismatch)
		}
	}
}
