/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print rv and toolchain component versions",
		Args:  cobra.ArbitraryArgs,
		RunE:  app.dispatch,
	}
}
