package shell

import (
	"context"
	"sync"
	"time"

	"github.com/cask-games/marquee/pkg/content"
	"github.com/cask-games/marquee/pkg/gate"
	"github.com/cask-games/marquee/pkg/log"
	"github.com/cask-games/marquee/pkg/messages"
	"github.com/cask-games/marquee/pkg/surface"
	"github.com/cask-games/marquee/pkg/theme"
	"github.com/google/uuid"
)

const (
	// DefaultSettleDelay is the wait between mounting a surface and the
	// first broadcast, giving the surface time to start listening.
	DefaultSettleDelay = 100 * time.Millisecond

	// commandBufferSize bounds pending commands to the control loop.
	commandBufferSize = 64
)

// Controller orchestrates the embedded surface: it selects the active
// variant, owns the mounted/unmounted lifecycle, and relays gate and theme
// state through the channel whenever either changes. All state it owns is
// mutated on a single control loop; asynchronous work re-enters the loop as
// events.
type Controller struct {
	store   content.Store
	channel surface.Channel
	theme   *theme.Controller
	gate    *gate.Gate
	settle  time.Duration

	cmds chan command
	done chan struct{}

	// control-loop-owned state
	generation uint64
	desired    content.Variant
	payload    *content.Payload
	handle     *surface.Handle

	// read-only snapshot for HTTP handlers
	snapMu        sync.RWMutex
	snapVariant   content.Variant
	snapMounted   bool
	snapHandleID  uuid.UUID
	activePayload *content.Payload
}

type NewControllerOptions struct {
	Store   content.Store
	Channel surface.Channel
	Theme   *theme.Controller
	Gate    *gate.Gate
	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration
}

// NewController creates a new shell controller.
func NewController(opts NewControllerOptions) *Controller {
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Controller{
		store:   opts.Store,
		channel: opts.Channel,
		theme:   opts.Theme,
		gate:    opts.Gate,
		settle:  settle,
		cmds:    make(chan command, commandBufferSize),
		done:    make(chan struct{}),
	}
}

type command interface{}

type selectVariantCmd struct {
	variant content.Variant
}

type toggleThemeCmd struct {
	reply chan theme.Theme
}

type confirmCmd struct {
}

type attachCmd struct {
	handleID uuid.UUID
	conduit  surface.Conduit
	reply    chan error
}

type resolvedEvt struct {
	generation uint64
	variant    content.Variant
	payload    *content.Payload
	err        error
}

type settleEvt struct {
	handleID uuid.UUID
}

// Run processes commands until the context is canceled. It must be running
// for the public methods to make progress.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			if c.handle != nil {
				c.handle.Close()
			}
			log.Info("Shell controller stopped")
			return
		case cmd := <-c.cmds:
			c.handleCommand(ctx, cmd)
		}
	}
}

func (c *Controller) handleCommand(ctx context.Context, cmd command) {
	switch cmd := cmd.(type) {
	case selectVariantCmd:
		c.generation++
		c.desired = cmd.variant
		log.Info("Selecting content variant %q", cmd.variant)
		go c.resolve(ctx, c.generation, cmd.variant)
	case resolvedEvt:
		if cmd.generation != c.generation {
			log.Debug("Discarding stale resolution for variant %q", cmd.variant)
			return
		}
		if cmd.err != nil {
			// The prior payload and surface stay untouched; the shell
			// remains interactive.
			log.Error("Failed to resolve variant %q: %v", cmd.variant, cmd.err)
			return
		}
		c.mount(cmd.payload)
	case toggleThemeCmd:
		next := c.theme.Toggle()
		log.Debug("Theme toggled to %s", next)
		c.broadcast()
		cmd.reply <- next
	case confirmCmd:
		if !c.gate.Confirm() {
			log.Debug("Onboarding already dismissed")
			return
		}
		log.Info("Onboarding confirmed")
		c.broadcast()
	case attachCmd:
		cmd.reply <- c.attach(cmd.handleID, cmd.conduit)
	case settleEvt:
		if c.handle == nil || c.handle.ID() != cmd.handleID {
			return
		}
		c.broadcast()
	}
}

func (c *Controller) resolve(ctx context.Context, generation uint64, variant content.Variant) {
	payload, err := c.store.Resolve(ctx, variant)
	c.post(resolvedEvt{
		generation: generation,
		variant:    variant,
		payload:    payload,
		err:        err,
	})
}

// mount replaces the active payload and surface handle. The old handle is
// invalidated before the new one exists so there is never more than one
// live handle.
func (c *Controller) mount(payload *content.Payload) {
	if c.handle != nil {
		c.handle.Close()
		c.handle = nil
	}

	c.payload = payload
	c.handle = surface.NewHandle(payload.Variant)
	c.updateSnapshot()

	log.Info("Mounted surface %s for variant %q", c.handle.ID(), payload.Variant)
	c.scheduleSettle(c.handle.ID())
}

func (c *Controller) attach(handleID uuid.UUID, conduit surface.Conduit) error {
	if c.handle == nil || c.handle.ID() != handleID {
		return &ErrStaleHandle{HandleID: handleID}
	}
	if err := c.handle.Attach(conduit); err != nil {
		return err
	}
	log.Debug("Surface %s attached", handleID)
	c.scheduleSettle(handleID)
	return nil
}

// scheduleSettle posts a broadcast event after the settle delay. The event
// carries the handle id so broadcasts for superseded surfaces are dropped.
func (c *Controller) scheduleSettle(handleID uuid.UUID) {
	time.AfterFunc(c.settle, func() {
		c.post(settleEvt{handleID: handleID})
	})
}

// broadcast pushes both control messages through the channel. Sends to a
// surface that is not listening yet are silently lost; re-broadcasting on
// every state change is what makes the surface eventually consistent.
func (c *Controller) broadcast() {
	setTheme, err := messages.NewSetTheme(c.theme.Current())
	if err != nil {
		log.Error("Failed to create set theme message: %v", err)
	} else {
		c.channel.Send(c.handle, setTheme)
	}

	pauseGame, err := messages.NewPauseGame(c.gate.Shown())
	if err != nil {
		log.Error("Failed to create pause game message: %v", err)
	} else {
		c.channel.Send(c.handle, pauseGame)
	}
}

func (c *Controller) post(cmd command) {
	select {
	case c.cmds <- cmd:
	case <-c.done:
	}
}

// SelectVariant requests a new active variant. Resolution is asynchronous;
// if another variant is selected before this one resolves, the earlier
// result is discarded.
func (c *Controller) SelectVariant(variant content.Variant) {
	c.post(selectVariantCmd{variant: variant})
}

// ToggleTheme flips the theme and returns the new value. It is available
// irrespective of gate state.
func (c *Controller) ToggleTheme() theme.Theme {
	reply := make(chan theme.Theme, 1)
	select {
	case c.cmds <- toggleThemeCmd{reply: reply}:
	case <-c.done:
		return c.theme.Current()
	}
	select {
	case next := <-reply:
		return next
	case <-c.done:
		return c.theme.Current()
	}
}

// ConfirmStart dismisses the onboarding overlay. Confirming an already
// dismissed gate is a no-op.
func (c *Controller) ConfirmStart() {
	c.post(confirmCmd{})
}

// Attach connects a surface conduit to the handle with the given id. It
// fails for handles that are not the current one.
func (c *Controller) Attach(handleID uuid.UUID, conduit surface.Conduit) error {
	reply := make(chan error, 1)
	select {
	case c.cmds <- attachCmd{handleID: handleID, conduit: conduit, reply: reply}:
	case <-c.done:
		return &ErrStopped{}
	}
	select {
	case err := <-reply:
		return err
	case <-c.done:
		return &ErrStopped{}
	}
}

func (c *Controller) updateSnapshot() {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	c.activePayload = c.payload
	if c.handle != nil {
		c.snapVariant = c.handle.Variant()
		c.snapHandleID = c.handle.ID()
		c.snapMounted = true
	} else {
		c.snapVariant = ""
		c.snapHandleID = uuid.Nil
		c.snapMounted = false
	}
}

// Status is a read-only snapshot of the shell for external observers.
type Status struct {
	Variant    content.Variant `json:"variant"`
	Mounted    bool            `json:"mounted"`
	Theme      theme.Theme     `json:"theme"`
	Onboarding bool            `json:"onboarding"`
}

// Status returns the current shell snapshot.
func (c *Controller) Status() Status {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return Status{
		Variant:    c.snapVariant,
		Mounted:    c.snapMounted,
		Theme:      c.theme.Current(),
		Onboarding: c.gate.Shown(),
	}
}

// ActivePayload returns the mounted payload and its handle id, or nil when
// nothing is mounted.
func (c *Controller) ActivePayload() (*content.Payload, uuid.UUID) {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	if !c.snapMounted {
		return nil, uuid.Nil
	}
	return c.activePayload, c.snapHandleID
}
