// Package commands provides the CLI commands for the sjavac tool.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"martianoff/sjavac/internal/config"
	"martianoff/sjavac/internal/sjava"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
}

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	flags := &globalFlags{}
	check := &checkFlags{}

	rootCmd := &cobra.Command{
		Use:   "sjavac [file.sjava]",
		Short: "Static verifier for s-Java source files",
		Long: `sjavac checks that an s-Java source file is legal.

The verdict is printed on stdout and used as the exit status:
  0  the file is legal
  1  the file is invalid (the reason is printed on stderr)
  2  the file could not be read

Usage:
  sjavac file.sjava                 Check one file (shorthand)
  sjavac check a.sjava b.sjava      Check several files
  sjavac check --rev HEAD a.sjava   Check a file as committed
  sjavac cache clear                Drop cached verdicts
  sjavac version                    Print version`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(cmd, flags, check, stdin, args, false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log every analyzed line to stderr")

	rootCmd.AddCommand(newCheckCmd(flags, check, stdin))
	rootCmd.AddCommand(newCacheCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdin)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return int(sjava.IOError)
	}
	return 0
}
