package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retroenv/sim8086/arch/cpu/x86"
	"github.com/retroenv/sim8086/config"
	"github.com/retroenv/sim8086/log"
)

var runConfigPath string

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <binary>",
		Short: "Execute a flat 8086 binary against the functional simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&runConfigPath, "config", "", "INI-style config file overriding initial register state and tracing")
	return cmd
}

// RunConfig carries the initial-state and tracing knobs the run subcommand
// accepts through --config, mapped onto x86.Option values. Unset register
// fields default to zero, matching the simulator's own zeroed-CPU lifecycle
// rule; Trace defaults to true.
type RunConfig struct {
	InitialIP int  `config:"cpu.initial_ip,default=0"`
	InitialSP int  `config:"cpu.initial_sp,default=0"`
	InitialCS int  `config:"cpu.initial_cs,default=0"`
	InitialDS int  `config:"cpu.initial_ds,default=0"`
	InitialES int  `config:"cpu.initial_es,default=0"`
	InitialSS int  `config:"cpu.initial_ss,default=0"`
	Trace     bool `config:"cpu.trace,default=true"`
}

func loadRunConfig(path string) (RunConfig, error) {
	cfg := RunConfig{Trace: true}
	if path == "" {
		return cfg, nil
	}
	if err := config.Load(path, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("loading run config: %w", err)
	}
	return cfg, nil
}

func (rc RunConfig) options() []x86.Option {
	return []x86.Option{
		x86.WithInitialIP(uint32(rc.InitialIP)),
		x86.WithInitialSP(uint16(rc.InitialSP)),
		x86.WithInitialCS(uint16(rc.InitialCS)),
		x86.WithInitialDS(uint16(rc.InitialDS)),
		x86.WithInitialES(uint16(rc.InitialES)),
		x86.WithInitialSS(uint16(rc.InitialSS)),
	}
}

func runSimulate(ctx context.Context, path string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	rc, err := loadRunConfig(runConfigPath)
	if err != nil {
		logger.Error("failed to load run config", "error", err)
		return err
	}

	data, err := readFile(ctx, path)
	if err != nil {
		logger.Error("failed to read input file", "error", err)
		return err
	}

	memory := x86.NewMemory(logger)
	if err := memory.LoadData(0, data); err != nil {
		logger.Error("failed to load program into memory", "error", err)
		return err
	}

	cpu, err := x86.New(memory, rc.options()...)
	if err != nil {
		logger.Error("failed to create cpu", "error", err)
		return err
	}

	programLen := uint32(len(data))
	for cpu.IP < programLen {
		result, err := cpu.Step()
		if err != nil {
			logger.Error("execution failed", log.String("path", path), "error", err)
			return err
		}
		if rc.Trace && !quiet {
			fmt.Printf("%s ;%s\n", result.Text, result.Trace)
		}
	}

	if !quiet {
		printFinalState(cpu)
	}

	return dumpMemory(memory, path)
}

func printFinalState(cpu *x86.CPU) {
	fmt.Println()
	fmt.Println("Final registers:")
	printNonZero("ax", cpu.AX)
	printNonZero("bx", cpu.BX)
	printNonZero("cx", cpu.CX)
	printNonZero("dx", cpu.DX)
	printNonZero("sp", cpu.SP)
	printNonZero("bp", cpu.BP)
	printNonZero("si", cpu.SI)
	printNonZero("di", cpu.DI)
	printNonZero("es", cpu.ES)
	printNonZero("cs", cpu.CS)
	printNonZero("ss", cpu.SS)
	printNonZero("ds", cpu.DS)
	fmt.Printf("flags: %s\n", cpu.Flags)
}

func printNonZero(name string, value uint16) {
	if value == 0 {
		return
	}
	fmt.Printf("      %s: 0x%04x (%d)\n", name, value, value)
}

func dumpMemory(memory *x86.Memory, inputPath string) error {
	ext := filepath.Ext(inputPath)
	dataPath := strings.TrimSuffix(inputPath, ext) + ".data"

	f, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating memory dump file: %w", err)
	}
	defer f.Close()

	if err := memory.WriteRaw(f); err != nil {
		return fmt.Errorf("writing memory dump: %w", err)
	}
	return nil
}
