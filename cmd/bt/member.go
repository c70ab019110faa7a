package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMemberCommand creates the member command.
func NewMemberCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "member [item...]",
		Short: "Enumerate the elements of a list",
		Long:  "Solves member(Item, [item, ...]) and prints every Item.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMember(cmd, rootOpts, args)
		},
	}
}

func runMember(cmd *cobra.Command, opts *RootOptions, items []string) error {
	s := newSession(cmd, opts)
	h := &s.vm.Terms

	item, err := h.NewVariable()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	list, err := s.list(items)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	goal, err := h.NewCompound("member", item, list)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return s.run(cmd.Context(), goal, []binding{{name: "Item", term: item}})
}
