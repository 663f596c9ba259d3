package gridworld

import (
	"fmt"

	"neugym/pkg/engine/world"
)

// Agent is the single walker of a world.
type Agent struct {
	Current world.Coord
	Init    world.Coord
}

func (a Agent) String() string {
	return fmt.Sprintf("Agent(init=%v, current=%v)", a.Init, a.Current)
}

// InitAgent places the agent at a cell. An existing agent is only replaced
// when overwrite is set.
func (w *World) InitAgent(at world.Coord, overwrite bool) error {
	if !w.graph.HasNode(at) {
		return fmt.Errorf("%w: initial state coordinate %v out of world", world.ErrValidation, at)
	}
	if w.agent != nil && !overwrite {
		return fmt.Errorf("%w: agent already exists, set overwrite to replace it", world.ErrOverwrite)
	}
	w.agent = &Agent{Current: at, Init: at}
	return nil
}

// Agent returns the agent and whether one has been initialised.
func (w *World) Agent() (Agent, bool) {
	if w.agent == nil {
		return Agent{}, false
	}
	return *w.agent, true
}

// Step moves the agent one cell in dir and returns the cell reached, the
// reward and whether an object ended the episode.
//
// A move onto a virtual cell follows its alias; a move with no cell and no
// alias leaves the agent in place. The reward is the altitude drop plus the
// sampled payout of an object at the target. Time advances on every step, and
// the agent returns to its initial cell when the episode ends.
func (w *World) Step(dir world.Direction) (world.Coord, float64, bool, error) {
	if !dir.IsValid() {
		return world.Coord{}, 0, false, fmt.Errorf("%w: illegal action %v", world.ErrValidation, dir)
	}
	if w.agent == nil {
		return world.Coord{}, 0, false, fmt.Errorf("%w: agent not initialised", world.ErrValidation)
	}

	current := w.agent.Current
	next := current.Add(dir)
	if !w.graph.HasNode(next) {
		if v, ok := w.alias[next.Key()]; ok {
			next = v.Coord()
		} else {
			next = current
		}
	}

	from, _ := w.graph.Altitude(current)
	to, _ := w.graph.Altitude(next)
	r := from - to

	done := false
	if i, ok := w.objAt[next.Key()]; ok {
		o := w.objects[i]
		r += w.sampler.Sample(o.Reward, o.Punish, o.Prob)
		done = true
	}

	w.time++
	if done {
		w.agent.Current = w.agent.Init
	} else {
		w.agent.Current = next
	}
	return next, r, done, nil
}
