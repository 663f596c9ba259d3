package renderer

import (
	"os"
	"path/filepath"

	"neugym/pkg/game/gridworld"
)

// DumpFile writes an uncoloured rendering of w and its summary to path.
func DumpFile(path string, w *gridworld.World) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	text := Render(w, Options{NoColor: true, Width: DefaultWidth}) + Legend(true) + "\n\n" + w.String() + "\n"
	return os.WriteFile(path, []byte(text), 0o644)
}
