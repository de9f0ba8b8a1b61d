package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/spf13/cobra"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the galaxy variants and their default parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, v := range galaxy.Variants {
				writePreset(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func writePreset(w io.Writer, v galaxy.Variant) {
	p := v.Preset()
	fmt.Fprintf(w, "%s (jitter %s, colors %s)\n", v, v.JitterStrategy().Name(), v.ColorStrategy().Name())
	writeParams(w, p)
}

func writeParams(w io.Writer, p galaxy.Parameters) {
	fmt.Fprintf(w, "  count=%d size=%g radius=%g branches=%d spin=%g\n", p.Count, p.Size, p.Radius, p.Branches, p.Spin)
	fmt.Fprintf(w, "  randomness=%g power=%g\n", p.Randomness, p.RandomnessPower)
	fmt.Fprintf(w, "  color=%s inside=%s outside=%s\n", p.Color.Hex(), p.InsideColor.Hex(), p.OutsideColor.Hex())
}
