package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAppendCommand creates the append command.
func NewAppendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append [item...]",
		Short: "Split a list in every possible way",
		Long:  "Solves append(Prefix, Suffix, [item, ...]) and prints every pair.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(cmd, rootOpts, args)
		},
	}
}

func runAppend(cmd *cobra.Command, opts *RootOptions, items []string) error {
	s := newSession(cmd, opts)
	h := &s.vm.Terms

	prefix, err := h.NewVariable()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	suffix, err := h.NewVariable()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	list, err := s.list(items)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	goal, err := h.NewCompound("append", prefix, suffix, list)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return s.run(cmd.Context(), goal, []binding{
		{name: "Prefix", term: prefix},
		{name: "Suffix", term: suffix},
	})
}
