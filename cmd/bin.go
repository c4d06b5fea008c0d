/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) binCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "bin <artifact>",
		Short: "Flatten an ELF artifact to a raw binary image",
		Long: `Run objcopy -O binary on an artifact. The image is written next to the
artifact with a .bin extension unless -o names another path.`,
		Args: cobra.ArbitraryArgs,
		RunE: app.dispatch,
	}
	c.Flags().StringP("output", "o", "", "image path (default <artifact>.bin)")
	return c
}
