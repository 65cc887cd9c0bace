package shell

import "sync"

// State is the phase of the session loop.
type State int

const (
	ReadingLine State = iota
	DispatchingMeta
	DispatchingRemote
	Polling
	Terminated
)

func (s State) String() string {
	switch s {
	case ReadingLine:
		return "reading-line"
	case DispatchingMeta:
		return "dispatching-meta"
	case DispatchingRemote:
		return "dispatching-remote"
	case Polling:
		return "polling"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Context is the mutable state shared by the commands of a session.
type Context struct {
	mu     sync.Mutex
	target string
	wait   bool
}

// NewContext returns a context with no default data center and waiting on.
func NewContext() *Context {
	return &Context{wait: true}
}

// Target returns the default data center, or "".
func (c *Context) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// SetTarget sets the default data center. "" clears it.
func (c *Context) SetTarget(dcid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = dcid
}

// Wait reports whether commands wait for the default data center.
func (c *Context) Wait() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wait
}

// SetWait turns waiting on or off.
func (c *Context) SetWait(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wait = on
}
