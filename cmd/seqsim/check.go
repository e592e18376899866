package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/db47h/seqsim"
	"github.com/db47h/seqsim/stim"
)

var (
	checkWorkers int
	checkJSON    bool
)

var checkCmd = &cobra.Command{
	Use:   "check <stimulus.json>...",
	Short: "check recorded scenarios against the circuit",
	Long: `check loads the given stimulus files and verifies that the circuit selected
with --circuit reproduces every recorded scenario. The exit status is
non-zero if any scenario diverges or cannot be judged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildCircuit()
		if err != nil {
			return err
		}
		var scs []seqsim.Scenario
		for _, path := range args {
			s, err := stim.ReadFile(path)
			if err != nil {
				return err
			}
			log.Debug().Str("file", path).Int("scenarios", len(s)).Msg("stimulus loaded")
			scs = append(scs, s...)
		}
		log.Info().Str("circuit", m.Name()).Int("scenarios", len(scs)).
			Int("workers", checkWorkers).Msg("checking")

		e := &seqsim.Evaluator{Model: m, Workers: checkWorkers}
		r := e.Evaluate(scs)

		if checkJSON {
			if err := stim.WriteVerdicts(cmd.OutOrStdout(), r.Verdicts); err != nil {
				return err
			}
		} else {
			data := pterm.TableData{{"SCENARIO", "RESULT", "DETAIL"}}
			for i := range r.Verdicts {
				data = append(data, verdictRow(&r.Verdicts[i]))
			}
			if err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").
				WithData(data).Render(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d scenarios: %d passed, %d failed, %d inconclusive\n",
				len(r.Verdicts), r.Passed, r.Failed, r.Inconclusive)
		}
		if !r.Ok() {
			return errors.Errorf("%d of %d scenarios did not pass",
				r.Failed+r.Inconclusive, len(r.Verdicts))
		}
		return nil
	},
}

func verdictRow(v *seqsim.Verdict) []string {
	switch {
	case v.Inconclusive():
		return []string{v.Scenario, pterm.FgYellow.Sprint("ERROR"), v.Err.Error()}
	case !v.Matches:
		return []string{v.Scenario, pterm.FgRed.Sprint("FAIL"), v.Mismatch.String()}
	}
	return []string{v.Scenario, pterm.FgGreen.Sprint("PASS"), ""}
}

func init() {
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0,
		"scenario evaluation goroutines (0 = GOMAXPROCS)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"write verdicts as JSON instead of a table")
}
