package devtools

import (
	"fmt"
	"os"
	"path/filepath"

	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
)

const sceneFilename = "scene-level%d.json"

// ExportScene saves scene in the scene dump format into dir and returns the
// file's absolute path.
func ExportScene(dir string, g *state.Game, scene scenefile.Scene) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf(sceneFilename, g.Level)))
	if err != nil {
		return "", fmt.Errorf("devtools: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("devtools: %w", err)
	}
	defer f.Close()

	if err := scenefile.Save(f, scene); err != nil {
		return absPath, err
	}
	return absPath, nil
}
