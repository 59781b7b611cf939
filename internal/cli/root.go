// Package cli wires the commands together: it maps each invocation to one
// probe or to the clock-synchronization engine, picks the output format once,
// and renders exactly one result or one error.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/config"
	"github.com/luckyjian/my/internal/result"
)

// probeTimeout bounds local OS probes. Generous: these normally answer in
// microseconds, but a stale network mount can stall a disk enumeration.
const probeTimeout = 10 * time.Second

// NewRootCmd builds and returns the root cobra.Command for the my CLI.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile    string
		formatFlag string
		verbose    bool
	)

	// cfg and format are shared pointers populated in PersistentPreRunE
	// before any subcommand runs. The format decision is made exactly once
	// here and applies to whatever the invoked command produces.
	cfg := &config.Config{}
	format := new(result.Format)

	root := &cobra.Command{
		Use:   "my",
		Short: "Find out about your setup",
		Long: "my answers single questions about the local host — addresses, DNS servers, " +
			"identity, network-synchronized date and time, CPU, memory, and storage — " +
			"as plain text or as structured JSON/YAML.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				loaded.Output.Format = formatFlag
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			*cfg = *loaded
			*format = result.Format(cfg.Output.Format)

			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default "+config.DefaultConfigPath+")")
	root.PersistentFlags().StringVarP(&formatFlag, "output", "o", config.DefaultFormat, "Output format: text|json|yaml")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	root.AddCommand(newSystemCmds(format)...)
	root.AddCommand(newNetworkCmds(cfg, format)...)
	root.AddCommand(newTimeCmds(cfg, format)...)
	root.AddCommand(newResourceCmds(format)...)

	return root
}

// execute runs root and prints a diagnostic for any error whose diagnostic
// was not already written by writeFailure: invalid flags, unknown commands,
// config load or validation failures. Cobra's own error printing is silenced,
// so this is the only place such errors reach the user.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil && !errors.As(err, new(reportedError)) {
		fmt.Fprintln(root.ErrOrStderr(), "my:", err)
	}
	return err
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := execute(NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
