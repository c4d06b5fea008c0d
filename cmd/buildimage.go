/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) buildImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build-image",
		Short: "Build the toolchain image if it is not present",
		Long: `Build the toolchain image from the Dockerfile named in .rv.yaml
(default ./Dockerfile). Nothing is done when the image already exists.`,
		Args: cobra.ArbitraryArgs,
		RunE: app.dispatch,
	}
}
