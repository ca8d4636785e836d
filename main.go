package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/terminal"
	"hiro/pkg/game/config"
	"hiro/pkg/game/gameplay"
	"hiro/pkg/game/renderer"
	"hiro/pkg/game/renderer/ebiten"
	"hiro/pkg/game/renderer/tui"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// logFile receives log output while the terminal renderer owns the screen.
const logFile = "hiro.log"

func main() {
	env := config.LoadEnv()

	rendererName := flag.String("renderer", env.Renderer, "renderer: ebiten, tui or auto")
	seed := flag.Int64("seed", 0, "random seed (default: HIRO_SEED, else the clock)")
	startLevel := flag.Int("level", 1, "starting level (for developer testing)")
	configPath := flag.String("config", env.ConfigPath, "YAML tunables file layered over the defaults")
	watch := flag.Bool("watch", false, "reload the -config file when it changes")
	lang := flag.String("lang", env.Language, "narrative language")
	sceneInfo := flag.String("scene-info", "", "print a summary of a saved scene file and exit")
	dumpDir := flag.String("dump-dir", ".", "directory for state dumps (F9) and scene exports (F10)")
	flag.Parse()

	if *sceneInfo != "" {
		if err := printSceneInfo(os.Stdout, *sceneInfo); err != nil {
			fatal(err)
		}
		return
	}

	if *lang != "" {
		if err := text.SetLanguage(*lang); err != nil {
			log.Printf("%v, keeping %s", err, text.DefaultLanguage)
		}
	}

	cfg := loadConfig(*configPath)
	if unknown := input.ApplyOverrides(cfg.Bindings); len(unknown) > 0 {
		log.Printf("config: ignoring unknown bindings %v", unknown)
	}

	g := state.NewGame(resolveSeed(*seed, seedFlagSet(), env))
	g.Config = cfg
	log.Printf("seed %d", g.Seed)

	o := gameplay.NewDefault(g)
	o.DumpDir = *dumpDir
	if err := o.Validate(); err != nil {
		fatal(err)
	}
	if !o.Goto(*startLevel) {
		fatal(fmt.Errorf("no level %d", *startLevel))
	}

	r, onTerminal, err := pickRenderer(*rendererName)
	if err != nil {
		fatal(err)
	}
	if onTerminal {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatal(fmt.Errorf("open %s: %w", logFile, err))
		}
		defer f.Close()
		log.SetOutput(f)
	}

	var loop renderer.Loop = o
	if *watch {
		if *configPath == "" {
			log.Printf("config: -watch needs -config, not watching")
		} else if w, err := config.Watch(*configPath); err != nil {
			log.Printf("config: watch %s: %v", *configPath, err)
		} else {
			defer w.Close()
			loop = watchConfig(o, w, *configPath)
		}
	}

	if err := r.Init(); err != nil {
		fatal(err)
	}
	err = r.Run(loop)
	r.Close()
	if err != nil {
		fatal(err)
	}
	renderer.PrintString("%s\n", text.Get("GOODBYE"))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "hiro: %v\n", err)
	os.Exit(1)
}

// loadConfig reads the tunables, falling back to the embedded defaults and
// then to the code defaults.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg
	}
	log.Printf("%v, using the defaults", err)
	if cfg, err = config.Embedded(); err == nil {
		return cfg
	}
	log.Printf("%v", err)
	return config.Default()
}

func seedFlagSet() bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			set = true
		}
	})
	return set
}

// resolveSeed prefers the -seed flag, then HIRO_SEED, then the clock.
func resolveSeed(flagSeed int64, flagSet bool, env config.Env) int64 {
	switch {
	case flagSet:
		return flagSeed
	case env.HasSeed:
		return env.Seed
	}
	return time.Now().UnixNano()
}

// pickRenderer returns the named renderer and whether it draws on the
// terminal. Auto prefers a window when a display is available.
func pickRenderer(name string) (renderer.Renderer, bool, error) {
	switch name {
	case "tui":
		return tui.New(), true, nil
	case "ebiten":
		return ebiten.New(), false, nil
	case "", "auto":
		if hasDisplay() {
			return ebiten.New(), false, nil
		}
		if terminal.IsInteractive() && terminal.FitsTerminalView(terminal.GetSize()) {
			return tui.New(), true, nil
		}
		return nil, false, errors.New("no display, and the terminal is missing or too small")
	}
	return nil, false, fmt.Errorf("unknown renderer %q", name)
}

func hasDisplay() bool {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// printSceneInfo summarises a saved scene: object counts, bounds and camera.
func printSceneInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scene-info: %w", err)
	}
	defer f.Close()

	s, err := scenefile.Load(f)
	if err != nil {
		return fmt.Errorf("scene-info: %s: %w", path, err)
	}

	counts := map[scenefile.Type]int{}
	for _, o := range s.Objects {
		counts[o.Type]++
	}
	fmt.Fprint(w, renderer.FormatString("TITLE{Scene} ITEM{%s}\n", path))
	fmt.Fprint(w, renderer.FormatString("  objects: ITEM{%d} (cubes %d, spheres %d)\n",
		len(s.Objects), counts[scenefile.TypeCube], counts[scenefile.TypeSphere]))

	if len(s.Objects) > 0 {
		lo, hi := s.Objects[0].Position(), s.Objects[0].Position()
		for _, o := range s.Objects[1:] {
			p := o.Position()
			lo.X, lo.Y, lo.Z = min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z)
			hi.X, hi.Y, hi.Z = max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z)
		}
		fmt.Fprintf(w, "  centers: %.2f,%.2f,%.2f to %.2f,%.2f,%.2f\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}

	if cam, ok := s.CurrentCamera(); ok {
		eye := cam.Eye()
		fmt.Fprintf(w, "  camera: %.2f,%.2f,%.2f (%d views)\n", eye.X, eye.Y, eye.Z, len(s.Cameras))
	} else {
		fmt.Fprint(w, renderer.FormatString("  camera: SUBTLE{none}\n"))
	}
	return nil
}
