package main

import (
	"log"

	"hiro/pkg/engine/input"
	"hiro/pkg/game/config"
	"hiro/pkg/game/gameplay"
)

// reloadingLoop hands tunables reloaded by the watcher goroutine to the
// orchestrator between steps, so only the render loop touches game state.
type reloadingLoop struct {
	*gameplay.Orchestrator
	configs chan *config.Config
}

func newReloadingLoop(o *gameplay.Orchestrator) *reloadingLoop {
	return &reloadingLoop{Orchestrator: o, configs: make(chan *config.Config, 1)}
}

// watchConfig reloads path on every watcher event until the watcher closes.
func watchConfig(o *gameplay.Orchestrator, w *config.Watcher, path string) *reloadingLoop {
	l := newReloadingLoop(o)
	go func() {
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				cfg, err := config.Load(path)
				if err != nil {
					log.Printf("%v, keeping the current tunables", err)
					continue
				}
				l.offer(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("config: watch: %v", err)
			}
		}
	}()
	return l
}

// offer queues cfg, replacing one that has not been picked up yet.
func (l *reloadingLoop) offer(cfg *config.Config) {
	for {
		select {
		case l.configs <- cfg:
			return
		default:
		}
		select {
		case <-l.configs:
		default:
		}
	}
}

// Step applies a pending reload and advances the game.
func (l *reloadingLoop) Step(f input.Frame) bool {
	select {
	case cfg := <-l.configs:
		l.SetConfig(cfg)
	default:
	}
	return l.Orchestrator.Step(f)
}
