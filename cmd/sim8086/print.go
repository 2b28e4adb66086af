package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retroenv/sim8086/arch/cpu/x86"
)

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <binary>",
		Short: "Disassemble a flat 8086 binary to NASM-compatible text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runPrint(ctx context.Context, path string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	data, err := readFile(ctx, path)
	if err != nil {
		logger.Error("failed to read input file", "error", err)
		return err
	}

	text, err := x86.Disassemble(data)
	if err != nil {
		logger.Error("disassembly failed", "error", err)
		return err
	}

	fmt.Print(text)
	return nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return os.ReadFile(path)
}
