// Package app binds input events to repository mutations and view state.
// The controller is a single-threaded cooperative event loop; every
// mutation happens from the loop, so no locks are needed.
package app

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/logging"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/views"
)

// Mode is the coarse input mode shown in the footer
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
	ModeDialog
	ModeConflict
)

// refreshSet is a bitmask of cached slices an action invalidated
type refreshSet uint16

const (
	refreshHead refreshSet = 1 << iota
	refreshStatus
	refreshBranches
	refreshCommits
	refreshStash
	refreshTags
	refreshDiff

	refreshAll = refreshHead | refreshStatus | refreshBranches |
		refreshCommits | refreshStash | refreshTags | refreshDiff
)

// mainSource remembers what the main panel is currently showing so a
// targeted refresh can recompute it
type mainSource struct {
	kind   uint8
	id     string // Commit id
	stash  int
	path   string
	staged bool
}

const (
	srcNone uint8 = iota
	srcStatusFile
	srcCommit
	srcStash
	srcHelp
	srcConflicts
)

// messageTTL is how long a transient footer message stays visible
const messageTTL = 4 * time.Second

// pollTimeout is the cooperative wait of one loop iteration
const pollTimeout = 100 * time.Millisecond

// App is the controller state: cached repository slices, per-panel view
// state, the focused panel, and the single-slot dialog.
type App struct {
	term *terminal.Terminal
	repo Repository
	cfg  *config.Config
	th   config.Theme
	log  logging.Logger

	frame         *terminal.Buffer
	width, height int
	tooSmall      bool

	statusView   *views.StatusView
	branchesView *views.BranchesView
	commitsView  *views.CommitsView
	stashView    *views.StashView
	tagsView     *views.TagsView
	mainView     *views.MainView

	focus     views.PanelID
	thirdSlot views.PanelID // Panel occupying the bottom-left slot

	keymap *Keymap
	dialog *Dialog
	mode   Mode

	headBranch string
	detached   bool
	ahead      int
	behind     int
	clean      bool

	conflicts []string

	message        string
	messageIsError bool
	messageAt      time.Time

	mainSrc  mainSource
	pending  refreshSet
	quit     bool
	exitCode int
}

// New builds the controller. The terminal is attached later by Run so
// tests can drive the app headless.
func New(repo Repository, cfg *config.Config, log logging.Logger) (*App, error) {
	theme, err := cfg.Theme.Build()
	if err != nil {
		return nil, err
	}
	keymap, err := NewKeymap(cfg.Keys)
	if err != nil {
		return nil, err
	}

	a := &App{
		repo:         repo,
		cfg:          cfg,
		th:           theme,
		log:          log,
		statusView:   views.NewStatusView(),
		branchesView: views.NewBranchesView(),
		commitsView:  views.NewCommitsView(),
		stashView:    views.NewStashView(),
		tagsView:     views.NewTagsView(),
		mainView:     views.NewMainView(),
		focus:        views.PanelStatus,
		thirdSlot:    views.PanelCommits,
		keymap:       keymap,
		pending:      refreshAll,
		frame:        terminal.NewBuffer(0, 0),
	}
	return a, nil
}

// Run drives the event loop until quit and returns the process exit code.
// The terminal is restored on every path out, including panics.
func (a *App) Run(term *terminal.Terminal) (code int) {
	a.term = term

	defer func() {
		term.Fini()
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			a.log.Error("panic", logging.F("err", fmt.Sprint(r)))
			code = 2
		}
	}()

	w, h := term.Size()
	a.setSize(w, h)

	for !a.quit {
		a.applyRefresh()
		a.expireMessage()
		a.renderNow()

		ev, ok := term.PollEvent(pollTimeout)
		if !ok {
			continue
		}
		switch ev.Type {
		case terminal.EventResize:
			a.setSize(ev.Width, ev.Height)
		case terminal.EventKey:
			a.handleKey(ev)
		case terminal.EventError:
			a.log.Error("terminal read", logging.F("err", ev.Err))
			a.quit = true
			a.exitCode = 2
		case terminal.EventClosed:
			a.quit = true
		}
	}
	return a.exitCode
}

// renderNow composes and flushes one frame. Also called from progress
// callbacks to keep the UI alive during synchronous network operations.
func (a *App) renderNow() {
	if a.term == nil {
		return
	}
	a.Compose(a.frame)
	if err := a.term.Flush(a.frame); err != nil {
		a.log.Error("terminal write", logging.F("err", err))
		a.quit = true
		a.exitCode = 2
	}
}

// setSize records new dimensions; shrinking below the minimum surface
// swaps the dashboard for the too-small notice
func (a *App) setSize(w, h int) {
	a.width, a.height = w, h
	a.tooSmall = w < terminal.MinWidth || h < terminal.MinHeight
	a.frame.Resize(w, h)
	if a.term != nil {
		a.term.Resize(w, h)
	}
	if !a.tooSmall {
		a.pending |= refreshAll
	}
}

// handleKey resolves one key event. Resolution order: active dialog first,
// then the focused panel's bindings, then globals.
func (a *App) handleKey(ev terminal.Event) {
	if a.tooSmall {
		// Only Quit responds below the minimum surface
		if (ev.Key == terminal.KeyRune && ev.Rune == 'q') ||
			(ev.Key == terminal.KeyRune && ev.Rune == 'c' && ev.Mods&terminal.ModCtrl != 0) {
			a.quit = true
		}
		return
	}

	if a.dialog != nil {
		submit, value, closed := a.dialog.handleKey(ev)
		if closed {
			a.closeDialog()
		}
		if submit != submitNone {
			a.dispatchSubmit(submit, value)
		}
		return
	}

	act, ok := a.keymap.Resolve(a.focus, ev)
	if !ok {
		return // Unbound keys are dropped
	}
	a.dispatch(act)
}

// openDialog installs the single modal slot. Pushing while one is active
// is a programming error; the controller closes first.
func (a *App) openDialog(d *Dialog) {
	a.dialog = d
	a.mode = ModeDialog
}

func (a *App) closeDialog() {
	a.dialog = nil
	a.mode = ModeNormal
	if len(a.conflicts) > 0 {
		a.mode = ModeConflict
	}
}

// setMessage shows a transient footer message
func (a *App) setMessage(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.messageIsError = false
	a.messageAt = time.Now()
}

// setError surfaces a repository or validation failure. Multi-line
// messages open a modal error dialog; the app continues either way.
func (a *App) setError(err error) {
	if err == nil {
		return
	}
	a.log.Warn("operation failed", logging.F("err", err))
	lines := splitLines(err.Error())
	if len(lines) > 1 && a.dialog == nil {
		a.openDialog(newError("Error", lines))
		return
	}
	a.message = err.Error()
	a.messageIsError = true
	a.messageAt = time.Now()
}

func (a *App) expireMessage() {
	if a.message != "" && time.Since(a.messageAt) > messageTTL {
		a.message = ""
	}
}

// visiblePanels returns the focus cycle: the three left slots and Main
func (a *App) visiblePanels() [4]views.PanelID {
	return [4]views.PanelID{views.PanelStatus, views.PanelBranches, a.thirdSlot, views.PanelMain}
}

// focusIndex returns the focused panel's position in the cycle
func (a *App) focusIndex() int {
	for i, p := range a.visiblePanels() {
		if p == a.focus {
			return i
		}
	}
	return 0
}

// focusPanel moves focus; exactly one panel is focused at any time
func (a *App) focusPanel(p views.PanelID) {
	if p == views.PanelStash || p == views.PanelTags || p == views.PanelCommits {
		if a.thirdSlot != p {
			a.thirdSlot = p
			switch p {
			case views.PanelStash:
				a.pending |= refreshStash
			case views.PanelTags:
				a.pending |= refreshTags
			}
		}
	}
	a.focus = p
	if p == views.PanelStatus {
		a.pending |= refreshDiff
	}
}

func (a *App) nextPanel() {
	panels := a.visiblePanels()
	a.focusPanel(panels[(a.focusIndex()+1)%len(panels)])
}

func (a *App) prevPanel() {
	panels := a.visiblePanels()
	a.focusPanel(panels[(a.focusIndex()+len(panels)-1)%len(panels)])
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
