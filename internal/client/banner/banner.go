// Package banner implements the transient error message shown above the
// analysis form: it appears, stays visible for a fixed period, fades out and
// disappears. Only presentation timing lives here, never business logic.
package banner

import (
	"sync"
	"time"
)

type Phase int

const (
	PhaseHidden Phase = iota
	PhaseVisible
	PhaseFadingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseVisible:
		return "visible"
	case PhaseFadingOut:
		return "fading-out"
	default:
		return "hidden"
	}
}

// State is a snapshot of the banner: the message (empty when hidden) and
// the current phase.
type State struct {
	Message string
	Phase   Phase
}

const (
	// Timings of the original dashboard: 3s visible, 500ms fade.
	DefaultVisibleFor = 3 * time.Second
	DefaultFadeFor    = 500 * time.Millisecond
)

// Banner holds exactly one active error at a time. A new Show replaces any
// in-flight message and restarts the timing from the visible phase. All
// timers are cancellable; after Close no timer mutates state.
type Banner struct {
	visibleFor time.Duration
	fadeFor    time.Duration

	mu      sync.Mutex
	message string
	phase   Phase
	timer   *time.Timer
	gen     uint64
	closed  bool

	onChange func(State)
}

// New creates a hidden banner. Non-positive durations fall back to the
// defaults.
func New(visibleFor, fadeFor time.Duration) *Banner {
	if visibleFor <= 0 {
		visibleFor = DefaultVisibleFor
	}
	if fadeFor <= 0 {
		fadeFor = DefaultFadeFor
	}
	return &Banner{visibleFor: visibleFor, fadeFor: fadeFor}
}

// SetOnChange registers a callback invoked after every phase transition,
// outside the banner's lock. Intended for the rendering layer.
func (b *Banner) SetOnChange(fn func(State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Show displays msg, cancelling any pending dismissal and restarting the
// visible timer.
func (b *Banner) Show(msg string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.gen++
	gen := b.gen
	if b.timer != nil {
		b.timer.Stop()
	}
	b.message = msg
	b.phase = PhaseVisible
	b.timer = time.AfterFunc(b.visibleFor, func() { b.startFade(gen) })
	b.notifyLocked()
}

func (b *Banner) startFade(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen || b.phase != PhaseVisible {
		b.mu.Unlock()
		return
	}
	b.phase = PhaseFadingOut
	b.timer = time.AfterFunc(b.fadeFor, func() { b.finish(gen) })
	b.notifyLocked()
}

func (b *Banner) finish(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen || b.phase != PhaseFadingOut {
		b.mu.Unlock()
		return
	}
	b.message = ""
	b.phase = PhaseHidden
	b.timer = nil
	b.notifyLocked()
}

// Hide dismisses the banner immediately, cancelling pending timers.
func (b *Banner) Hide() {
	b.mu.Lock()
	if b.closed || b.phase == PhaseHidden {
		b.mu.Unlock()
		return
	}
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.message = ""
	b.phase = PhaseHidden
	b.notifyLocked()
}

// State snapshots the banner.
func (b *Banner) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Message: b.message, Phase: b.phase}
}

// Close cancels any pending timer and makes all further transitions no-ops.
// Safe to call more than once.
func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.message = ""
	b.phase = PhaseHidden
}

// notifyLocked releases the lock and invokes the change callback with the
// state that was just installed.
func (b *Banner) notifyLocked() {
	fn := b.onChange
	st := State{Message: b.message, Phase: b.phase}
	b.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
