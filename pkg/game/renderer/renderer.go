// Package renderer draws grid worlds as coloured character lattices.
package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/term"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
)

const (
	DefaultWidth = 80
	minRuleWidth = 8
)

// Options controls Render.
type Options struct {
	// NoColor disables ANSI styling.
	NoColor bool
	// Width of the separator rules. Zero means the terminal width.
	Width int
}

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is
// not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Render draws every area of w, one block per area, followed by a status line.
func Render(w *gridworld.World, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	style := func(s string, ts TextStyle) string {
		if opts.NoColor {
			return s
		}
		return StyleText(s, ts)
	}

	agent, hasAgent := w.Agent()
	doorways := make(map[world.Coord]bool)
	for _, c := range w.Doorways() {
		doorways[c] = true
	}

	var sb strings.Builder
	for area := 0; area <= w.NumArea(); area++ {
		shape, err := w.AreaShape(area)
		if err != nil {
			continue
		}
		title := gotext.Get("Area %d %v", area, shape)
		if area == 0 {
			title = gotext.Get("Origin %v", shape)
		}
		sb.WriteString(style(title, StyleHeading))
		sb.WriteByte('\n')

		for x := 0; x < shape.Rows; x++ {
			for y := 0; y < shape.Cols; y++ {
				c := world.C(area, x, y)
				switch {
				case hasAgent && agent.Current == c:
					sb.WriteString(style(IconAgent, StyleAgent))
				case hasObject(w, c):
					sb.WriteString(style(IconObject, StyleObject))
				case doorways[c]:
					sb.WriteString(style(IconDoorway, StyleDoorway))
				default:
					sb.WriteString(style(IconFloor, StyleCell))
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(style(rule(width), StyleSubtle))
		sb.WriteByte('\n')
	}

	sb.WriteString(status(w, agent, hasAgent))
	sb.WriteByte('\n')
	return sb.String()
}

func hasObject(w *gridworld.World, c world.Coord) bool {
	_, ok := w.ObjectAt(c)
	return ok
}

func rule(width int) string {
	return strings.Repeat("─", max(width, minRuleWidth))
}

func status(w *gridworld.World, agent gridworld.Agent, hasAgent bool) string {
	pos := gotext.Get("none")
	if hasAgent {
		pos = agent.Current.String()
	}
	return gotext.Get("time %d  areas %d  objects %d  agent %s", w.Time(), w.NumArea()+1, len(w.Objects()), pos)
}

// Legend explains the map icons.
func Legend(noColor bool) string {
	parts := []struct {
		icon  string
		style TextStyle
		label string
	}{
		{IconAgent, StyleAgent, gotext.Get("agent")},
		{IconObject, StyleObject, gotext.Get("object")},
		{IconDoorway, StyleDoorway, gotext.Get("doorway")},
		{IconFloor, StyleCell, gotext.Get("floor")},
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		icon := p.icon
		if !noColor {
			icon = StyleText(icon, p.style)
		}
		out = append(out, fmt.Sprintf("%s %s", icon, p.label))
	}
	return strings.Join(out, "  ")
}

// VisibleWidth is the printed width of s once colour codes are removed.
func VisibleWidth(s string) int {
	return len([]rune(color.ClearCode(s)))
}

// Clear wipes the terminal and homes the cursor.
func Clear() {
	fmt.Print("\033[H\033[2J")
}
