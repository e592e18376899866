/*
Package seqsim simulates small synchronous sequential circuits and checks
recorded signal traces against them.

A circuit is described declaratively as a set of signals and registers with
prioritized, guarded update rules, evaluated once per clock edge from an
atomic pre-edge snapshot. A Stepper advances such a model cycle by cycle, a
Runner replays whole recorded input traces, a Checker diffs the simulated
outputs against recorded ones and reports the first divergence (cycle,
signal, expected and actual value, and the rule that produced it), and an
Evaluator runs batches of scenarios and aggregates the verdicts.

Values are four-state (0, 1, x, z) and bit vectors read MSB first. Where a
circuit declares two update rules a don't-care pair, the checker accepts
either rule's outcome on edges where both guards hold, instead of branding
one of the two legal behaviors a bug.

*/
package seqsim
