/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/config"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/dispatch"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/repl"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/toolchain"
)

// Version is stamped at link time (-ldflags "-X ...cmd.Version=...").
var Version = "0.4.0"

// App holds what every command needs. The cobra tree is rebuilt for each
// invocation so that flag values never carry from one REPL line to the
// next.
type App struct {
	Dispatcher *dispatch.Dispatcher
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	Prompt     string

	inLoop bool
}

// NewApp wires the container-backed toolchain for cfg.
func NewApp(cfg config.Config, in *os.File, out, errOut io.Writer) *App {
	tty := repl.IsTerminal(in) && repl.IsTerminal(os.Stdout)
	runner := &toolchain.ContainerRunner{
		Engine:     cfg.Engine,
		Image:      cfg.Image,
		WorkDir:    cfg.WorkDir,
		MountPoint: cfg.MountPoint,
		TTY:        tty,
		Stdin:      in,
		Stdout:     out,
		Stderr:     errOut,
	}
	image := &toolchain.Image{
		Engine:     cfg.Engine,
		Tag:        cfg.Image,
		Dockerfile: cfg.Dockerfile,
		ContextDir: cfg.ContextDir,
		WorkDir:    cfg.WorkDir,
		Stdout:     out,
		Stderr:     errOut,
	}
	app := &App{
		Dispatcher: &dispatch.Dispatcher{
			Tools: &toolchain.Invoker{
				Runner:    runner,
				Prefix:    cfg.ToolPrefix,
				WorkDir:   cfg.WorkDir,
				OutputDir: cfg.OutputDir,
			},
			Env:        image,
			DefaultOpt: cfg.DefaultOpt,
			Version:    Version,
			Out:        out,
			Err:        errOut,
		},
		In:  in,
		Out: out,
		Err: errOut,
	}
	if repl.IsTerminal(in) {
		app.Prompt = repl.DefaultPrompt
	}
	return app
}

func (app *App) rootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "rv",
		Short: "RISC-V cross-compilation front end",
		Long: `rv drives a containerized RISC-V GCC toolchain. It resolves an
architecture token such as 32imac or 32imc_zba_zbb into -march/-mabi,
compiles, disassembles and flattens ELF files inside the toolchain
image, mounting the current directory at /work.

Run without a command to enter an interactive session that accepts the
same commands, one per line.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetOutput(app.Err)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.inLoop {
				return app.dispatch(cmd, nil)
			}
			return app.interactive()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log container commands")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fault.Errorf(fault.InvalidOption, "%s: %v", cmd.Name(), err)
	})
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(
		app.buildCommand(),
		app.dumpCommand(),
		app.binCommand(),
		app.archsCommand(),
		app.versionCommand(),
		app.shellCommand(),
		app.buildImageCommand(),
	)
	root.SetHelpCommand(app.helpCommand())
	return root
}

// Execute runs one command line. Errors that did not come from rv itself
// (cobra's unknown command, bad arguments) are option errors. --verbose
// lasts for this line only.
func (app *App) Execute(args []string) error {
	if args == nil {
		args = []string{}
	}
	defer log.SetOutput(log.Writer())

	root := app.rootCommand()
	root.SetArgs(args)
	_, err := root.ExecuteC()
	if err != nil {
		var fe *fault.Error
		if !errors.As(err, &fe) {
			return fault.Wrap(fault.InvalidOption, err, "")
		}
	}
	return err
}

// request turns parsed flags into a dispatch.Request. Only flags that were
// given on the line are included.
func request(cmd *cobra.Command, args []string) dispatch.Request {
	opts := make(map[string]string)
	inherited := cmd.InheritedFlags()
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if inherited.Lookup(f.Name) != nil {
			return
		}
		opts[f.Name] = f.Value.String()
	})
	name := cmd.Name()
	if cmd == cmd.Root() {
		name = ""
	}
	return dispatch.Request{Command: name, Args: args, Options: opts}
}

func (app *App) dispatch(cmd *cobra.Command, args []string) error {
	_, err := app.Dispatcher.Dispatch(request(cmd, args))
	return err
}

func (app *App) interactive() error {
	app.inLoop = true
	defer func() { app.inLoop = false }()

	loop := &repl.Loop{
		In:     app.In,
		Out:    app.Out,
		Prompt: app.Prompt,
		Exec:   app.Execute,
		Report: func(err error) { dispatch.Report(app.Err, err) },
	}
	if _, err := loop.Run(); err != nil {
		return fault.Wrap(fault.IOFailure, err, "reading commands")
	}
	return nil
}

// Execute is called by main. It returns the process exit status.
func Execute() int {
	log.SetFlags(log.Lmsgprefix | log.Lmicroseconds)
	log.SetPrefix("rv: ")
	log.SetOutput(io.Discard)

	if !repl.IsTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "" {
		color.Enable = false
	}

	wd, err := os.Getwd()
	if err != nil {
		err = fault.Wrap(fault.IOFailure, err, "working directory")
		dispatch.Report(os.Stderr, err)
		return fault.ExitCode(err)
	}
	cfg, err := config.Load(wd)
	if err != nil {
		dispatch.Report(os.Stderr, err)
		return fault.ExitCode(err)
	}
	if cfg.Debug {
		log.SetOutput(os.Stderr)
	}
	log.Printf("config: dir %s engine %s image %s\n", cfg.WorkDir, cfg.Engine, cfg.Image)

	app := NewApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	err = app.Execute(os.Args[1:])
	dispatch.Report(os.Stderr, err)
	return fault.ExitCode(err)
}
