package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/db47h/seqsim/stim"
)

var genOut string

var genCmd = &cobra.Command{
	Use:   "gen <inputs.json>",
	Short: "generate golden output traces for input-only stimulus",
	Long: `gen simulates an input-only stimulus file and fills in its "output
variable" segments with the circuit's responses, producing a complete
recorded stimulus. The result goes to stdout, or to the file given with
--out.`,
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
		if genOut == "" {
			return stim.Write(cmd.OutOrStdout(), scs)
		}
		f, err := os.Create(genOut)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		if err := stim.Write(f, scs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "close output")
		}
		log.Info().Str("file", genOut).Int("scenarios", len(scs)).Msg("stimulus written")
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", "", "write the stimulus to a file")
}
