// Package layout loads grid world layouts from YAML files.
//
// A layout is validated against an embedded JSON schema before it is decoded,
// then Build replays it against a fresh gridworld.World in file order:
// origin, areas, paths, objects, agent and finally the reset checkpoint.
package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
)

//go:embed layout.schema.json
var schemaJSON string

const schemaURL = "https://neugym.local/layout.schema.json"

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

type Layout struct {
	Origin     Origin   `yaml:"origin"`
	Areas      []Area   `yaml:"areas,omitempty"`
	Paths      []Path   `yaml:"paths,omitempty"`
	Objects    []Object `yaml:"objects,omitempty"`
	Agent      *Agent   `yaml:"agent,omitempty"`
	Checkpoint bool     `yaml:"checkpoint,omitempty"`
}

type Origin struct {
	Shape    []int       `yaml:"shape"`
	Altitude [][]float64 `yaml:"altitude,omitempty"`
}

type Area struct {
	Shape      []int       `yaml:"shape"`
	AccessFrom []int       `yaml:"access_from,omitempty"`
	AccessTo   []int       `yaml:"access_to,omitempty"`
	Via        string      `yaml:"via,omitempty"`
	Altitude   [][]float64 `yaml:"altitude,omitempty"`
}

type Path struct {
	From []int  `yaml:"from"`
	To   []int  `yaml:"to"`
	Via  string `yaml:"via,omitempty"`
}

type Object struct {
	At     []int   `yaml:"at"`
	Reward float64 `yaml:"reward"`
	Punish float64 `yaml:"punish,omitempty"`
	Prob   float64 `yaml:"prob"`
}

type Agent struct {
	Init []int `yaml:"init"`
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse validates a YAML document against the layout schema and decodes it.
func Parse(b []byte) (*Layout, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrValidation, err)
	}
	// The schema validator wants JSON value types.
	j, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrValidation, err)
	}
	var generic any
	if err := json.Unmarshal(j, &generic); err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrValidation, err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrValidation, err)
	}

	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrValidation, err)
	}
	return &l, nil
}

// Build creates a world from the layout. Errors name the failing entry.
func (l *Layout) Build(opts ...gridworld.Option) (*gridworld.World, error) {
	shape, err := world.ParseShape(l.Origin.Shape)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	alt, err := altitude(l.Origin.Altitude)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	w, err := gridworld.New(shape, alt, opts...)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	for i, a := range l.Areas {
		aopts, shape, err := a.options()
		if err != nil {
			return nil, fmt.Errorf("areas[%d]: %w", i, err)
		}
		if _, err := w.AddArea(shape, aopts...); err != nil {
			return nil, fmt.Errorf("areas[%d]: %w", i, err)
		}
	}

	for i, p := range l.Paths {
		if err := p.apply(w); err != nil {
			return nil, fmt.Errorf("paths[%d]: %w", i, err)
		}
	}

	for i, o := range l.Objects {
		at, err := world.ParseCoord(o.At)
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
		if err := w.AddObject(at, o.Reward, o.Prob, o.Punish); err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
	}

	if l.Agent != nil {
		at, err := world.ParseCoord(l.Agent.Init)
		if err != nil {
			return nil, fmt.Errorf("agent: %w", err)
		}
		if err := w.InitAgent(at, false); err != nil {
			return nil, fmt.Errorf("agent: %w", err)
		}
	}

	if l.Checkpoint {
		if err := w.SetResetCheckpoint(false); err != nil {
			return nil, fmt.Errorf("checkpoint: %w", err)
		}
	}
	return w, nil
}

func (a Area) options() ([]gridworld.AreaOption, world.Shape, error) {
	shape, err := world.ParseShape(a.Shape)
	if err != nil {
		return nil, shape, err
	}
	var opts []gridworld.AreaOption
	if a.AccessFrom != nil {
		from, err := world.ParseCoord(a.AccessFrom)
		if err != nil {
			return nil, shape, err
		}
		opts = append(opts, gridworld.AccessFrom(from))
	}
	if a.AccessTo != nil {
		if len(a.AccessTo) != 2 {
			return nil, shape, fmt.Errorf("%w: access_to of length 2 expected, got %d", world.ErrValidation, len(a.AccessTo))
		}
		opts = append(opts, gridworld.AccessTo(a.AccessTo[0], a.AccessTo[1]))
	}
	via, err := world.ParseDirectionName(a.Via)
	if err != nil {
		return nil, shape, err
	}
	opts = append(opts, gridworld.Via(via))

	alt, err := altitude(a.Altitude)
	if err != nil {
		return nil, shape, err
	}
	if alt != nil {
		opts = append(opts, gridworld.WithAltitude(alt))
	}
	return opts, shape, nil
}

func (p Path) apply(w *gridworld.World) error {
	from, err := world.ParseCoord(p.From)
	if err != nil {
		return err
	}
	to, err := world.ParseCoord(p.To)
	if err != nil {
		return err
	}
	via, err := world.ParseDirectionName(p.Via)
	if err != nil {
		return err
	}
	return w.AddPath(from, to, via)
}

// altitude turns rows of numbers into a matrix. No rows means the default.
func altitude(rows [][]float64) (mat.Matrix, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: altitude row %d has %d values, want %d", world.ErrValidation, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// String renders the layout back to YAML.
func (l *Layout) String() string {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return err.Error()
	}
	_ = enc.Close()
	return sb.String()
}
