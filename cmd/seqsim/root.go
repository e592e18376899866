package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/db47h/seqsim"
	"github.com/db47h/seqsim/seqlib"
)

var (
	circuitName string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "seqsim",
	Short: "simulate small synchronous circuits and check recorded traces",
	Long: `seqsim simulates small synchronous sequential circuits cycle by cycle and
checks recorded input/output traces against them.

Stimulus files hold one scenario object or an array of them; see the stim
package documentation for the format. The circuit to simulate is selected
with --circuit; "seqsim circuits" lists the available ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "--log-level")
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(lvl).With().Timestamp().Logger()
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seqsim: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&circuitName, "circuit", "c", "shiftcount",
		"circuit to simulate, see \"seqsim circuits\"")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(circuitsCmd)
}

// buildCircuit builds the model selected by --circuit.
func buildCircuit() (*seqsim.Model, error) {
	m, ok := seqlib.Lookup(circuitName)
	if !ok {
		return nil, errors.Errorf("unknown circuit %q (have %s)",
			circuitName, strings.Join(seqlib.Names(), ", "))
	}
	log.Debug().Str("circuit", m.Name()).Msg("model built")
	return m, nil
}
