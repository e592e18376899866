package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/db47h/seqsim"
	"github.com/db47h/seqsim/stim"
)

var runCmd = &cobra.Command{
	Use:   "run <stimulus.json>",
	Short: "simulate recorded inputs and print the resulting stimulus",
	Long: `run feeds each scenario's recorded inputs to the circuit selected with
--circuit and prints the whole stimulus with the output segments replaced
by the simulated values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildCircuit()
		if err != nil {
			return err
		}
		scs, err := stim.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := simulate(m, scs); err != nil {
			return err
		}
		return stim.Write(cmd.OutOrStdout(), scs)
	},
}

// simulate replaces each scenario's outputs with the circuit's simulated
// response to its inputs.
func simulate(m *seqsim.Model, scs []seqsim.Scenario) error {
	r := seqsim.NewRunner(m)
	for i := range scs {
		if scs[i].Outputs != nil {
			log.Warn().Str("scenario", scs[i].Name).Msg("recorded outputs replaced")
		}
		out, err := r.Run(scs[i].Inputs)
		if err != nil {
			return errors.Wrapf(err, "scenario %q", scs[i].Name)
		}
		scs[i].Outputs = out
	}
	return nil
}
