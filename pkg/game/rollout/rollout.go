// Package rollout drives episodes of a grid world under a policy and records
// every transition.
package rollout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/recorder"
	"neugym/pkg/logger"
)

// Policy picks the next action from the agent's cell.
type Policy interface {
	Act(state world.Coord) world.Direction
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(state world.Coord) world.Direction

func (f PolicyFunc) Act(state world.Coord) world.Direction {
	return f(state)
}

// RandomPolicy picks a uniformly random cardinal direction.
func RandomPolicy(seed int64) Policy {
	rng := rand.New(rand.NewSource(seed))
	dirs := world.AllDirections()
	return PolicyFunc(func(world.Coord) world.Direction {
		return dirs[rng.Intn(len(dirs))]
	})
}

// Runner steps World under Policy. Store is optional.
type Runner struct {
	World    *gridworld.World
	Policy   Policy
	Store    recorder.Store
	MaxSteps int
	RunID    string
	Log      logrus.FieldLogger
}

// Result summarises a run.
type Result struct {
	RunID   string
	Returns []float64
	Steps   []int
}

// Run plays episodes and returns the undiscounted return of each. An episode
// ends when an object is reached or after MaxSteps steps. Each episode starts
// from the reset checkpoint when the world has one, else from the agent's
// initial cell.
func (r *Runner) Run(ctx context.Context, episodes int) (Result, error) {
	if r.World == nil || r.Policy == nil {
		return Result{}, errors.New("rollout: world and policy are required")
	}
	if r.MaxSteps <= 0 {
		return Result{}, fmt.Errorf("rollout: max steps must be positive, got %d", r.MaxSteps)
	}
	if _, ok := r.World.Agent(); !ok {
		return Result{}, fmt.Errorf("rollout: %w: agent not initialised", world.ErrValidation)
	}
	log := r.Log
	if log == nil {
		log = logger.Log
	}
	res := Result{RunID: r.RunID}
	if res.RunID == "" {
		res.RunID = recorder.NewRunID()
	}

	for ep := 0; ep < episodes; ep++ {
		if err := r.begin(); err != nil {
			return res, err
		}

		var total float64
		var buf []recorder.Transition
		steps := 0
		for steps < r.MaxSteps {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			a, _ := r.World.Agent()
			dir := r.Policy.Act(a.Current)
			next, rew, done, err := r.World.Step(dir)
			if err != nil {
				return res, fmt.Errorf("episode %d step %d: %w", ep, steps, err)
			}
			steps++
			total += rew
			buf = append(buf, recorder.Transition{
				RunID:   res.RunID,
				Episode: ep,
				Time:    r.World.Time(),
				From:    a.Current,
				Action:  dir,
				To:      next,
				Reward:  rew,
				Done:    done,
			})
			if done {
				break
			}
		}

		if r.Store != nil && len(buf) > 0 {
			if err := r.Store.Append(ctx, buf...); err != nil {
				return res, fmt.Errorf("episode %d: record: %w", ep, err)
			}
		}
		res.Returns = append(res.Returns, total)
		res.Steps = append(res.Steps, steps)

		log.WithFields(logrus.Fields{
			"run":     res.RunID,
			"episode": ep,
			"steps":   steps,
			"return":  total,
		}).Debug("episode finished")
	}
	return res, nil
}

func (r *Runner) begin() error {
	if r.World.HasResetCheckpoint() {
		return r.World.Reset()
	}
	a, _ := r.World.Agent()
	return r.World.InitAgent(a.Init, true)
}
