package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/ichiban/backtrack/engine"
)

// binding is a query variable reported with each solution.
type binding struct {
	name string
	term engine.Term
}

// session runs queries of a command on its own VM.
type session struct {
	vm          *engine.VM
	log         *zap.Logger
	out         io.Writer
	in          io.Reader
	interactive bool
	opts        *RootOptions
}

func newSession(cmd *cobra.Command, opts *RootOptions) *session {
	log := opts.logger
	if log == nil {
		log = zap.NewNop()
	}
	return &session{
		vm:          engine.New(opts.config.Options()...),
		log:         log,
		out:         cmd.OutOrStdout(),
		in:          cmd.InOrStdin(),
		interactive: opts.Interactive,
		opts:        opts,
	}
}

// list builds a list of atoms.
func (s *session) list(names []string) (engine.Term, error) {
	h := &s.vm.Terms
	elems := make([]engine.Term, len(names))
	for i, n := range names {
		a, err := h.NewAtom(n)
		if err != nil {
			return 0, err
		}
		elems[i] = a
	}
	return h.NewList(elems...)
}

// run prints the solutions of goal. In interactive mode, it asks for ';' before looking for the next one.
func (s *session) run(ctx context.Context, goal engine.Term, vars []binding) error {
	h := &s.vm.Terms

	log := s.log.With(zap.Stringer("query", uuid.New()))
	s.trace(log)

	if t := s.opts.config.Timeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	names := make(map[engine.Term]string, len(vars))
	for _, b := range vars {
		names[b.term] = b.name
	}
	format := []engine.WriteOption{
		engine.WithListNotation(true),
		engine.WithVariableNames(names),
	}
	log.Info("query", zap.String("goal", h.Format(goal, format...)))

	eol := "\n"
	var keys *bufio.Reader
	if s.interactive {
		if f, ok := s.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			oldState, err := terminal.MakeRaw(int(f.Fd()))
			if err != nil {
				return fmt.Errorf("failed to enter raw mode: %w", err)
			}
			defer func() {
				_ = terminal.Restore(int(f.Fd()), oldState)
			}()
			eol = "\r\n"
		}
		keys = bufio.NewReader(s.in)
	}

	c := 0
	sols := s.vm.Query(ctx, goal)
	for sols.Next() {
		c++

		ls := make([]string, 0, len(vars))
		for _, b := range vars {
			v := h.Deref(b.term)
			if h.IsVariable(v) {
				continue
			}
			ls = append(ls, fmt.Sprintf("%s = %s", b.name, h.Format(v, format...)))
		}
		if len(ls) == 0 {
			if _, err := fmt.Fprintf(s.out, "%t.%s", true, eol); err != nil {
				return err
			}
			break
		}

		if keys == nil {
			if _, err := fmt.Fprintf(s.out, "%s%s", strings.Join(ls, ", "), eol); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(s.out, "%s ", strings.Join(ls, ", ")); err != nil {
			return err
		}

		r, _, err := keys.ReadRune()
		if err != nil && !errors.Is(err, io.EOF) {
			log.Warn("failed to read key", zap.Error(err))
		}
		if r != ';' {
			r = '.'
		}

		if _, err := fmt.Fprintf(s.out, "%s%s", string(r), eol); err != nil {
			return err
		}

		if r == '.' {
			break
		}
	}
	if err := sols.Close(); err != nil {
		return err
	}

	if err := sols.Err(); err != nil {
		log.Error("query failed", zap.Error(err))
		return fmt.Errorf("query failed: %w", err)
	}

	if c == 0 {
		if _, err := fmt.Fprintf(s.out, "%t.%s", false, eol); err != nil {
			return err
		}
	}

	log.Info("done", zap.Int("solutions", c))
	return nil
}

// trace logs the ports of every procedure call at debug level.
func (s *session) trace(log *zap.Logger) {
	h := &s.vm.Terms
	port := func(name string) func(engine.Functor, []engine.Term) {
		return func(f engine.Functor, args []engine.Term) {
			if ce := log.Check(zapcore.DebugLevel, name); ce != nil {
				ce.Write(zap.String("goal", formatGoal(h, f, args)))
			}
		}
	}
	s.vm.OnCall = port("CALL")
	s.vm.OnExit = port("EXIT")
	s.vm.OnFail = port("FAIL")
	s.vm.OnRedo = port("REDO")
	s.vm.OnUnknown = func(f engine.Functor, _ []engine.Term) {
		log.Warn("UNKNOWN", zap.Stringer("procedure", f))
	}
}

// formatGoal writes a goal without putting it on the heap.
func formatGoal(h *engine.Heap, f engine.Functor, args []engine.Term) string {
	var sb strings.Builder
	sb.WriteString(f.Name.String())
	if len(args) == 0 {
		return sb.String()
	}
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		_ = h.WriteTerm(&sb, a, engine.WithListNotation(true))
	}
	sb.WriteByte(')')
	return sb.String()
}
