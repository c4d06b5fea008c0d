/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

// helpCommand replaces cobra's help so that "rv help" prints the same
// table in one-shot and interactive use. "rv help <command>" still shows
// cobra's usage for that command.
func (app *App) helpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "List commands, or show usage for one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err != nil || target == cmd.Root() {
					return fault.Errorf(fault.InvalidOption, "unknown command %q (try help)", args[0])
				}
				return target.Help()
			}
			return app.dispatch(cmd, nil)
		},
	}
}
