package gridworld

import (
	"fmt"
	"strings"

	"neugym/pkg/engine/world"
)

// String summarises the world for debugging. The format is not stable.
func (w *World) String() string {
	var sb strings.Builder
	sb.WriteString("GridWorld(\n")
	fmt.Fprintf(&sb, "\ttime=%d\n", w.time)
	fmt.Fprintf(&sb, "\torigin=Origin([0])(shape=%v)\n", w.areas[0])

	if w.NumArea() == 0 {
		sb.WriteString("\tareas=()\n")
	} else {
		sb.WriteString("\tareas=(\n")
		for i := 1; i <= w.NumArea(); i++ {
			fmt.Fprintf(&sb, "\t\t[%d] Area(shape=%v)\n", i, w.areas[i])
		}
		sb.WriteString("\t)\n")
	}

	if len(w.objects) == 0 {
		sb.WriteString("\tobjects=()\n")
	} else {
		sb.WriteString("\tobjects=(\n")
		for i, o := range w.objects {
			fmt.Fprintf(&sb, "\t\t[%d] %v\n", i, o)
		}
		sb.WriteString("\t)\n")
	}

	actions := make([]string, 0, 4)
	for _, d := range world.DoorwayOrder() {
		dx, dy := d.Delta()
		actions = append(actions, fmt.Sprintf("(%d, %d)", dx, dy))
	}
	fmt.Fprintf(&sb, "\tactions=(%s)\n", strings.Join(actions, ", "))

	if w.agent == nil {
		sb.WriteString("\tagent=None\n")
	} else {
		fmt.Fprintf(&sb, "\tagent=%v\n", *w.agent)
	}
	fmt.Fprintf(&sb, "\thas_reset_state=%t\n", w.checkpoint != nil)
	sb.WriteString(")")
	return sb.String()
}
