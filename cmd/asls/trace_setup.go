package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asls/internal/trace"
)

// setupTracing reads the trace flags, attaches the tracer to the command
// context and returns the matching cleanup.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	pulseInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace without a level traces phases.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:  level,
		Format: format,
		Path:   output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	pulse := trace.StartPulse(tracer, pulseInterval)
	return func() {
		pulse.Stop()
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
