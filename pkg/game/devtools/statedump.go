// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hiro/pkg/game/state"
)

const stateDumpFilename = "state-level%d.txt"

// Describer writes level-specific debug lines.
type Describer interface {
	Describe(w io.Writer, g *state.Game)
}

// writeStateDump writes the sections of a dump: metadata, panel, messages
// and the level's own view of itself.
func writeStateDump(w io.Writer, g *state.Game, level Describer) {
	fmt.Fprintln(w, "=== STATE DUMP DEBUG (level, panel, mechanics) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "level: %d\n", g.Level)
	fmt.Fprintf(w, "seed: %d\n", g.Seed)
	fmt.Fprintf(w, "time: %.3f\n", g.Time)
	fmt.Fprintf(w, "aim: %v\n", g.Aim)
	fmt.Fprintf(w, "can_replay: %v\n", g.CanReplay)
	fmt.Fprintf(w, "hud: %q\n", g.HUD)
	fmt.Fprintln(w, "coordinate_system: x,y,z with y up; yaw 0 faces -z")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Panel ---")
	fmt.Fprintf(w, "mode: %s\n", g.PanelMode())
	if g.Panel.Visible() {
		fmt.Fprintf(w, "title: %q\n", g.Panel.Title)
		fmt.Fprintf(w, "body: %q\n", g.Panel.Body)
		fmt.Fprintf(w, "hint: %q\n", g.Panel.Hint)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Messages ---")
	if len(g.Messages) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, m := range g.Messages {
		fmt.Fprintf(w, "  %q\n", m)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Level ---")
	if level == nil {
		fmt.Fprintln(w, "  (no level loaded)")
	} else {
		level.Describe(w, g)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "=== END STATE DUMP ===")
}

// DumpState writes a full debug dump into dir (the working directory when
// empty) and returns the file's absolute path. level may be nil.
func DumpState(dir string, g *state.Game, level Describer) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf(stateDumpFilename, g.Level)))
	if err != nil {
		return "", fmt.Errorf("devtools: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("devtools: %w", err)
	}
	defer f.Close()

	writeStateDump(f, g, level)

	if err := f.Sync(); err != nil {
		return absPath, fmt.Errorf("devtools: %w", err)
	}
	return absPath, nil
}
