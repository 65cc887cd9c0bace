// Package testutil provides fakes of the remote service for tests.
package testutil

import (
	"context"
	"sync"
)

// Call is one recorded remote call.
type Call struct {
	Operation string
	Params    []any
}

// Reply is a scripted response to an operation.
type Reply struct {
	Result any
	Err    error
}

// Caller is an in-memory api.Caller that records every call and answers from
// a script. Operations without a scripted reply return a nil result.
type Caller struct {
	mu      sync.Mutex
	calls   []Call
	replies map[string][]Reply
	id      string
}

// NewCaller returns an empty Caller.
func NewCaller() *Caller {
	return &Caller{replies: map[string][]Reply{}}
}

// On queues replies for operation. Replies are consumed in order and the
// last one repeats.
func (c *Caller) On(operation string, replies ...Reply) *Caller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[operation] = append(c.replies[operation], replies...)
	return c
}

// Return is On with a single successful reply.
func (c *Caller) Return(operation string, result any) *Caller {
	return c.On(operation, Reply{Result: result})
}

// Fail is On with a single failing reply.
func (c *Caller) Fail(operation string, err error) *Caller {
	return c.On(operation, Reply{Err: err})
}

// SetRequestID sets the value RequestID reports.
func (c *Caller) SetRequestID(id string) { c.id = id }

// RequestID returns the id set with SetRequestID.
func (c *Caller) RequestID() string { return c.id }

// Call records the call and returns the next scripted reply.
func (c *Caller) Call(ctx context.Context, operation string, params ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Operation: operation, Params: params})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	queue := c.replies[operation]
	if len(queue) == 0 {
		return nil, nil
	}
	reply := queue[0]
	if len(queue) > 1 {
		c.replies[operation] = queue[1:]
	}
	return reply.Result, reply.Err
}

// Calls returns a copy of the recorded calls.
func (c *Caller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Operations returns the names of the recorded calls in order.
func (c *Caller) Operations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.Operation
	}
	return out
}

// Count returns how many times operation was called.
func (c *Caller) Count(operation string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Operation == operation {
			n++
		}
	}
	return n
}
