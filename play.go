package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"neugym/pkg/engine/input"
	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/renderer"
)

// codeReader yields key codes, one per call.
type codeReader interface {
	ReadCode() (string, error)
}

type session struct {
	w       *gridworld.World
	out     io.Writer
	noColor bool
	clear   bool
	total   float64
	message string
}

// play runs the interactive loop until quit or end of input.
func play(w *gridworld.World, in codeReader, out io.Writer, noColor, clear bool) error {
	if _, ok := w.Agent(); !ok {
		return fmt.Errorf("%w: layout has no agent", world.ErrValidation)
	}
	s := &session{w: w, out: out, noColor: noColor, clear: clear}
	for {
		s.draw()
		code, err := in.ReadCode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.apply(input.Parse(input.DeviceTerminal, code)) {
			return nil
		}
	}
}

func (s *session) draw() {
	if s.clear {
		renderer.Clear()
	}
	fmt.Fprint(s.out, renderer.Render(s.w, renderer.Options{NoColor: s.noColor}))
	fmt.Fprintln(s.out, renderer.Legend(s.noColor))
	fmt.Fprintln(s.out, gotext.Get("return %.3f", s.total))
	if s.message != "" {
		fmt.Fprintln(s.out, s.message)
		s.message = ""
	}
	fmt.Fprint(s.out, "> ")
}

// apply performs one intent and reports whether to continue.
func (s *session) apply(in input.Intent) bool {
	if dir, ok := in.Direction(); ok {
		state, r, done, err := s.w.Step(dir)
		if err != nil {
			s.message = err.Error()
			return true
		}
		s.total += r
		s.message = gotext.Get("%v: reward %g at %v", dir, r, state)
		if done {
			s.message += " " + gotext.Get("episode done, return %.3f", s.total)
			s.total = 0
		}
		return true
	}

	switch in.Action {
	case input.ActionQuit:
		return false
	case input.ActionReset:
		s.total = 0
		if err := s.reset(); err != nil {
			s.message = err.Error()
		} else {
			s.message = gotext.Get("reset")
		}
	case input.ActionCheckpoint:
		if err := s.w.SetResetCheckpoint(true); err != nil {
			s.message = err.Error()
		} else {
			s.message = gotext.Get("checkpoint saved at time %d", s.w.Time())
		}
	case input.ActionInfo:
		s.message = s.w.String()
	case input.ActionHelp:
		s.message = help()
	default:
		s.message = gotext.Get("unknown command, ? for help")
	}
	return true
}

func (s *session) reset() error {
	if s.w.HasResetCheckpoint() {
		return s.w.Reset()
	}
	a, _ := s.w.Agent()
	return s.w.InitAgent(a.Init, true)
}

func help() string {
	byAction := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	var sb strings.Builder
	for _, a := range actions {
		fmt.Fprintf(&sb, "%-12s %s\n", input.ActionName(a), strings.Join(byAction[a], ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
