package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// AvailableState is the provisioning state that ends a wait.
const AvailableState = "AVAILABLE"

// ErrPollTimeout is returned when the data center did not become available
// before the deadline.
var ErrPollTimeout = errors.New("data center did not become available in time")

// Poller waits for a data center to become available.
type Poller struct {
	Interval time.Duration
	// Timeout bounds the whole wait; zero waits indefinitely.
	Timeout time.Duration
	Out     io.Writer

	sleep func(ctx context.Context, d time.Duration) error
}

// Wait queries the state of dcid until it is AVAILABLE. A dot is printed for
// every query that finds it busy; the caller ends the line.
func (p *Poller) Wait(ctx context.Context, client api.Caller, dcid string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	dots := ui.NewDots(p.Out)

	for {
		state, err := client.Call(ctx, "getDataCenterState", dcid)
		if err != nil {
			return p.classify(ctx, err)
		}
		if api.Stringify(state) == AvailableState {
			return nil
		}
		dots.Tick()
		if err := p.pause(ctx); err != nil {
			return p.classify(ctx, err)
		}
	}
}

func (p *Poller) pause(ctx context.Context) error {
	if p.sleep != nil {
		return p.sleep(ctx, p.Interval)
	}
	t := time.NewTimer(p.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Poller) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrPollTimeout, p.Timeout)
	}
	return err
}
