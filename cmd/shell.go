/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open a shell inside the toolchain image",
		Long: `Start /bin/bash in the toolchain image with the working directory
mounted at /work. The shell's exit status is not treated as an error.`,
		Args: cobra.ArbitraryArgs,
		RunE: app.dispatch,
	}
}
