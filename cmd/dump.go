/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"
)

func (app *App) dumpCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "dump <artifact>",
		Short: "Disassemble an artifact",
		Long: `Disassemble an artifact with objdump -d. --grep keeps only the lines
matching a regular expression; grep-style alternation (lr.w\|sc.w) is
accepted. A pattern that is not a valid expression is matched literally.`,
		Args: cobra.ArbitraryArgs,
		RunE: app.dispatch,
	}
	c.Flags().String("grep", "", "only print lines matching this pattern")
	return c
}
