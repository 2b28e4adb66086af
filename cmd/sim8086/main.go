// Command sim8086 decodes and executes 8086 machine code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retroenv/sim8086/buildinfo"
	"github.com/retroenv/sim8086/log"
)

var (
	version = "dev"
	commit  string
	date    string
)

var (
	logLevel string
	quiet    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "sim8086",
		Short:   "Disassembler and functional simulator for a subset of 8086 machine code",
		Version: buildinfo.Version(version, commit, date),
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-instruction output")

	root.AddCommand(newPrintCmd())
	root.AddCommand(newRunCmd())
	return root
}

func newLogger() (*log.Logger, error) {
	level, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = level
	return log.NewWithConfig(cfg), nil
}

func parseLevel(s string) (log.Level, error) {
	switch s {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
