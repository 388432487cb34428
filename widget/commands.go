package widget

import "sync"

type commandKind uint8

const (
	cmdFocus commandKind = iota
	cmdUnfocus
	cmdSetEnabled
	cmdDo
)

type command struct {
	kind  commandKind
	id    ID
	on    bool
	fn    func()
	owner ID // widget whose callback queued a Do, zero for the application
}

// Commands is a deferred queue of registry mutations and application actions
// Nothing queued takes effect until Registry.ApplyCommands
type Commands struct {
	mu    sync.Mutex
	ops   []command
	owner ID
}

func (c *Commands) push(cmd command) {
	c.mu.Lock()
	c.ops = append(c.ops, cmd)
	c.mu.Unlock()
}

// Focus moves focus to id
func (c *Commands) Focus(id ID) { c.push(command{kind: cmdFocus, id: id}) }

// Unfocus clears focus
func (c *Commands) Unfocus() { c.push(command{kind: cmdUnfocus}) }

// SetEnabled toggles input delivery for id
func (c *Commands) SetEnabled(id ID, on bool) {
	c.push(command{kind: cmdSetEnabled, id: id, on: on})
}

// Do runs fn at the sync point
// A panic in fn faults the widget that queued it
func (c *Commands) Do(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.ops = append(c.ops, command{kind: cmdDo, fn: fn, owner: c.owner})
	c.mu.Unlock()
}

// actingAs attributes every Do queued during fn to id
func (c *Commands) actingAs(id ID, fn func()) {
	c.mu.Lock()
	prev := c.owner
	c.owner = id
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.owner = prev
		c.mu.Unlock()
	}()
	fn()
}

// Len returns the number of pending commands
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ops)
}

func (c *Commands) drain() []command {
	c.mu.Lock()
	ops := c.ops
	c.ops = nil
	c.mu.Unlock()
	return ops
}
