package app

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/views"
)

// Stroke is the lookup key of the binding table
type Stroke struct {
	Key  terminal.Key
	Rune rune
	Mods terminal.Modifier
}

func keyStroke(k terminal.Key) Stroke {
	return Stroke{Key: k}
}

func runeStroke(r rune) Stroke {
	return Stroke{Key: terminal.KeyRune, Rune: r}
}

func ctrlStroke(r rune) Stroke {
	return Stroke{Key: terminal.KeyRune, Rune: r, Mods: terminal.ModCtrl}
}

// Keymap maps (focused panel, key event) to actions. Built once at startup
// from defaults, optionally overridden by configuration.
type Keymap struct {
	global map[Stroke]Action
	panel  map[views.PanelID]map[Stroke]Action
}

// Resolve looks up an event: panel bindings first, then global
func (k *Keymap) Resolve(panel views.PanelID, ev terminal.Event) (Action, bool) {
	s := Stroke{Key: ev.Key, Rune: ev.Rune, Mods: ev.Mods}
	if m := k.panel[panel]; m != nil {
		if act, ok := m[s]; ok {
			return act, true
		}
	}
	act, ok := k.global[s]
	return act, ok
}

// NewKeymap builds the binding table. Overrides map action names to key
// names and replace the action's global default binding.
func NewKeymap(overrides map[string]string) (*Keymap, error) {
	k := &Keymap{
		global: map[Stroke]Action{
			runeStroke('q'):              ActQuit,
			ctrlStroke('c'):              ActQuit,
			runeStroke('?'):              ActToggleHelp,
			keyStroke(terminal.KeyEscape): ActCancel,
			runeStroke('/'):              ActSearch,
			runeStroke(':'):              ActCommand,
			runeStroke('j'):              ActMoveDown,
			keyStroke(terminal.KeyDown):  ActMoveDown,
			runeStroke('k'):              ActMoveUp,
			keyStroke(terminal.KeyUp):    ActMoveUp,
			runeStroke('h'):              ActPrevPanel,
			keyStroke(terminal.KeyLeft):  ActPrevPanel,
			runeStroke('l'):              ActNextPanel,
			keyStroke(terminal.KeyRight): ActNextPanel,
			runeStroke('g'):              ActTop,
			runeStroke('G'):              ActBottom,
			ctrlStroke('u'):              ActPageUp,
			ctrlStroke('d'):              ActPageDown,
			keyStroke(terminal.KeyPageUp):   ActPageUp,
			keyStroke(terminal.KeyPageDown): ActPageDown,
			runeStroke('1'):              ActFocusStatus,
			runeStroke('2'):              ActFocusBranches,
			runeStroke('3'):              ActFocusCommits,
			runeStroke('4'):              ActFocusMain,
			runeStroke('5'):              ActFocusStash,
			runeStroke('6'):              ActFocusTags,
			keyStroke(terminal.KeyTab):   ActNextPanel,
			{Key: terminal.KeyTab, Mods: terminal.ModShift}: ActPrevPanel,
			runeStroke('P'): ActPush,
			runeStroke('p'): ActPull,
			runeStroke('f'): ActFetch,
		},
		panel: map[views.PanelID]map[Stroke]Action{
			views.PanelStatus: {
				keyStroke(terminal.KeyEnter): ActStageToggle,
				runeStroke(' '):              ActStageToggle,
				runeStroke('a'):              ActStageAll,
				runeStroke('A'):              ActUnstageAll,
				runeStroke('d'):              ActDiscard,
				runeStroke('c'):              ActCommit,
			},
			views.PanelBranches: {
				keyStroke(terminal.KeyEnter): ActCheckout,
				runeStroke('n'):              ActCreateBranch,
				runeStroke('d'):              ActDeleteBranch,
				runeStroke('D'):              ActForceDeleteBranch,
				runeStroke('m'):              ActMerge,
				runeStroke('R'):              ActRebase,
				runeStroke('t'):              ActToggleRemotes,
			},
			views.PanelCommits: {
				keyStroke(terminal.KeyEnter): ActDetails,
				runeStroke('/'):              ActSearch,
				runeStroke('n'):              ActNextResult,
				runeStroke('N'):              ActPrevResult,
				runeStroke('c'):              ActCherryPick,
				runeStroke('r'):              ActRevert,
				runeStroke('y'):              ActCopyHash,
			},
			views.PanelMain: {
				keyStroke(terminal.KeyEnter): ActStageHunk,
				runeStroke(' '):              ActStageHunk,
				runeStroke('['):              ActPrevHunk,
				runeStroke(']'):              ActNextHunk,
				runeStroke('{'):              ActPrevFile,
				runeStroke('}'):              ActNextFile,
			},
			views.PanelStash: {
				keyStroke(terminal.KeyEnter): ActDetails,
				runeStroke('s'):              ActStashSave,
				runeStroke('p'):              ActStashPop,
				runeStroke('d'):              ActStashDrop,
			},
			views.PanelTags: {
				keyStroke(terminal.KeyEnter): ActDetails,
				runeStroke('n'):              ActCreateTag,
				runeStroke('d'):              ActDeleteTag,
				runeStroke('P'):              ActPushTag,
			},
		},
	}

	for name, keyName := range overrides {
		act, ok := actionNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown action %q in [keys]", name)
		}
		stroke, err := ParseKeyName(keyName)
		if err != nil {
			return nil, err
		}
		// Drop the action's previous global binding, then rebind
		for s, a := range k.global {
			if a == act {
				delete(k.global, s)
			}
		}
		k.global[stroke] = act
	}

	return k, nil
}

var namedKeys = map[string]terminal.Key{
	"enter":     terminal.KeyEnter,
	"tab":       terminal.KeyTab,
	"esc":       terminal.KeyEscape,
	"escape":    terminal.KeyEscape,
	"backspace": terminal.KeyBackspace,
	"delete":    terminal.KeyDelete,
	"insert":    terminal.KeyInsert,
	"up":        terminal.KeyUp,
	"down":      terminal.KeyDown,
	"left":      terminal.KeyLeft,
	"right":     terminal.KeyRight,
	"home":      terminal.KeyHome,
	"end":       terminal.KeyEnd,
	"pageup":    terminal.KeyPageUp,
	"pagedown":  terminal.KeyPageDown,
	"f1":        terminal.KeyF1,
	"f2":        terminal.KeyF2,
	"f3":        terminal.KeyF3,
	"f4":        terminal.KeyF4,
	"f5":        terminal.KeyF5,
	"f6":        terminal.KeyF6,
	"f7":        terminal.KeyF7,
	"f8":        terminal.KeyF8,
	"f9":        terminal.KeyF9,
	"f10":       terminal.KeyF10,
	"f11":       terminal.KeyF11,
	"f12":       terminal.KeyF12,
	"space":     terminal.KeyRune, // Rune filled by caller
}

// ParseKeyName decodes names like "q", "ctrl+u", "shift+tab", "enter"
func ParseKeyName(name string) (Stroke, error) {
	var s Stroke
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), "+")
	if len(parts) == 0 {
		return s, fmt.Errorf("empty key name")
	}

	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			s.Mods |= terminal.ModCtrl
		case "alt":
			s.Mods |= terminal.ModAlt
		case "shift":
			s.Mods |= terminal.ModShift
		default:
			return s, fmt.Errorf("unknown modifier %q in key %q", mod, name)
		}
	}

	last := parts[len(parts)-1]
	if last == "space" {
		s.Key = terminal.KeyRune
		s.Rune = ' '
		return s, nil
	}
	if key, ok := namedKeys[last]; ok {
		s.Key = key
		return s, nil
	}
	runes := []rune(last)
	if len(runes) != 1 {
		return s, fmt.Errorf("unknown key %q", name)
	}
	s.Key = terminal.KeyRune
	s.Rune = runes[0]
	return s, nil
}
