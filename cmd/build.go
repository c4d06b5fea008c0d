/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) buildCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "build <source> --arch <token>",
		Short: "Compile a C or assembly source for a RISC-V target",
		Long: `Compile one source file inside the toolchain image. --arch takes a
preset (see "rv archs") or a custom token of the form
<32|64><letters>[_<ext>]..., for example 32imc_zba_zbb. The artifact is
written to build/<stem>.elf unless -o names another path.

With --bare the program is linked against the image's startup code and
linker script instead of the C library.`,
		Args: cobra.ArbitraryArgs,
		RunE: app.dispatch,
	}
	c.Flags().String("arch", "", "architecture preset or custom token (required)")
	c.Flags().StringP("output", "o", "", "artifact path (default build/<stem>.elf)")
	c.Flags().String("opt", "", "optimization level: O0 O1 O2 O3 Os Oz")
	c.Flags().Bool("bare", false, "link bare-metal with the bundled startup code")
	c.Flags().String("cflags", "", "extra compiler flags, split like a shell")
	return c
}
