package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/db47h/seqsim"
	"github.com/db47h/seqsim/seqlib"
)

var circuitsCmd = &cobra.Command{
	Use:   "circuits",
	Short: "list the built-in circuits",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := pterm.TableData{{"NAME", "INPUTS", "OUTPUTS"}}
		for _, name := range seqlib.Names() {
			m, _ := seqlib.Lookup(name)
			data = append(data, []string{name, sigString(m.Inputs()), sigString(m.Outputs())})
		}
		return pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").
			WithData(data).Render()
	},
}

func sigString(sigs []seqsim.Signal) string {
	var b strings.Builder
	for i, s := range sigs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Name)
		if s.Width > 1 {
			fmt.Fprintf(&b, "[%d]", s.Width)
		}
	}
	return b.String()
}
