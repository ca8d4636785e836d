package input

import (
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Held movement
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionSprint

	// Held look (keyboard look for terminals)
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown

	// Edge-triggered
	ActionJump
	ActionInteract      // E
	ActionConfirm       // Enter: dismiss the open panel
	ActionToggleWeapon  // F
	ActionToggleThrow   // G
	ActionCheat         // H: skip or auto-complete the level
	ActionReplay        // R: restart after the ending
	ActionAim           // right button: toggle aim
	ActionPrimary       // left button: inspect, swing or throw
	ActionQuit
	ActionDumpState
	ActionExportScene
)

// Held reports whether the action is read as a continuous state rather than
// an edge.
func (a Action) Held() bool {
	return a >= ActionMoveForward && a <= ActionLookDown
}

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "mouse_left").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event. Codes are
// case-folded so a shifted letter maps like the plain one.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.ToLower(raw.Code),
	}
}

// defaultBindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var defaultBindings = map[string]Action{
	"w":          ActionMoveForward,
	"s":          ActionMoveBack,
	"a":          ActionMoveLeft,
	"d":          ActionMoveRight,
	"arrow_up":   ActionMoveForward,
	"arrow_down": ActionMoveBack,
	"shift":      ActionSprint,

	"arrow_left":  ActionLookLeft,
	"arrow_right": ActionLookRight,
	"page_up":     ActionLookUp,
	"page_down":   ActionLookDown,

	"space": ActionJump,
	"e":     ActionInteract,
	"enter": ActionConfirm,
	"f":     ActionToggleWeapon,
	"g":     ActionToggleThrow,
	"h":     ActionCheat,
	"r":     ActionReplay,

	"mouse_right": ActionAim,
	"mouse_left":  ActionPrimary,
	"z":           ActionAim,
	"x":           ActionPrimary,

	"escape": ActionQuit,
	"q":      ActionQuit,
	"f9":     ActionDumpState,
	"f10":    ActionExportScene,
}

var bindings = cloneBindings(defaultBindings)

func cloneBindings(src map[string]Action) map[string]Action {
	dst := make(map[string]Action, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ResetBindings restores the stock bindings.
func ResetBindings() {
	bindings = cloneBindings(defaultBindings)
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

var actionNames = map[Action]string{
	ActionMoveForward:  "Move Forward",
	ActionMoveBack:     "Move Back",
	ActionMoveLeft:     "Move Left",
	ActionMoveRight:    "Move Right",
	ActionSprint:       "Sprint",
	ActionLookLeft:     "Look Left",
	ActionLookRight:    "Look Right",
	ActionLookUp:       "Look Up",
	ActionLookDown:     "Look Down",
	ActionJump:         "Jump",
	ActionInteract:     "Interact",
	ActionConfirm:      "Confirm",
	ActionToggleWeapon: "Toggle Weapon",
	ActionToggleThrow:  "Toggle Throw",
	ActionCheat:        "Cheat",
	ActionReplay:       "Replay",
	ActionAim:          "Aim",
	ActionPrimary:      "Primary",
	ActionQuit:         "Quit",
	ActionDumpState:    "Dump State",
	ActionExportScene:  "Export Scene",
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "None"
}

// ActionByName resolves a name as written in a bindings file. Matching
// ignores case, spaces, dashes and underscores.
func ActionByName(name string) (Action, bool) {
	want := normalizeName(name)
	for a, n := range actionNames {
		if normalizeName(n) == want {
			return a, true
		}
	}
	return ActionNone, false
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't shuffle between frames.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// reserved codes can't be rebound: confirm must always dismiss a panel and
// quit must always be reachable.
func reserved(code string) bool {
	return code == "enter" || code == "escape"
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	code = strings.ToLower(code)
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}

// ApplyOverrides binds each code to the named action. Unknown action names
// are returned so the caller can report them.
func ApplyOverrides(overrides map[string]string) (unknown []string) {
	for code, name := range overrides {
		act, ok := ActionByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		code = strings.ToLower(code)
		if reserved(code) {
			continue
		}
		bindings[code] = act
	}
	sort.Strings(unknown)
	return unknown
}
