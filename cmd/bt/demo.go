package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Find the elements two lists have in common",
		Long: `Find the elements two lists have in common.

Solves member(Item, List1), member(Item, List2) where the lists come from
the demo section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, rootOpts)
		},
	}
}

func runDemo(cmd *cobra.Command, opts *RootOptions) error {
	s := newSession(cmd, opts)
	h := &s.vm.Terms

	item, err := h.NewVariable()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	l1, err := s.list(opts.config.Demo.List1)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	l2, err := s.list(opts.config.Demo.List2)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	m1, err := h.NewCompound("member", item, l1)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	m2, err := h.NewCompound("member", item, l2)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	goal, err := h.NewCompound(",", m1, m2)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return s.run(cmd.Context(), goal, []binding{{name: "Item", term: item}})
}
