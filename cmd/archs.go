/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) archsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archs",
		Short: "List architecture presets",
		Args:  cobra.ArbitraryArgs,
		RunE:  app.dispatch,
	}
}
