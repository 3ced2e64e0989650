// Package resource bounds the transfer load a publishing pipeline puts
// on shared infrastructure.
//
// A Controller limits how many uploads run at once and how many bytes
// per second they move in total. Stores wrap their readers and writers
// with the rate-limited variants from this package so every transfer
// path draws on one budget.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds transfer limits.
type Config struct {
	// MaxConcurrentTransfers is the maximum number of uploads or
	// downloads in flight at once. If 0, defaults to 1.
	MaxConcurrentTransfers int64

	// BandwidthBytesPerSec is the combined throughput budget for all
	// transfers. If 0, unlimited.
	BandwidthBytesPerSec int64

	// OpsPerSec limits store operations (puts, deletes, lists) per
	// second, for backends with request quotas. If 0, unlimited.
	OpsPerSec float64
}

// Controller enforces transfer limits across concurrent publishers.
type Controller struct {
	cfg Config

	transferSem *semaphore.Weighted
	inFlight    atomic.Int64

	bwLimiter *rate.Limiter
	opLimiter *rate.Limiter
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentTransfers <= 0 {
		cfg.MaxConcurrentTransfers = 1
	}

	c := &Controller{
		cfg:         cfg,
		transferSem: semaphore.NewWeighted(cfg.MaxConcurrentTransfers),
	}

	if cfg.BandwidthBytesPerSec > 0 {
		c.bwLimiter = rate.NewLimiter(rate.Limit(cfg.BandwidthBytesPerSec), int(cfg.BandwidthBytesPerSec))
	}

	if cfg.OpsPerSec > 0 {
		burst := int(cfg.OpsPerSec)
		if burst < 1 {
			burst = 1
		}
		c.opLimiter = rate.NewLimiter(rate.Limit(cfg.OpsPerSec), burst)
	}

	return c
}

// AcquireTransfer reserves a transfer slot, blocking until one is free
// or ctx is canceled. Every successful acquire must be paired with
// ReleaseTransfer.
func (c *Controller) AcquireTransfer(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.transferSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireTransfer reserves a transfer slot without blocking.
// Returns true if acquired.
func (c *Controller) TryAcquireTransfer() bool {
	if c == nil {
		return true
	}
	if !c.transferSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseTransfer returns a transfer slot.
func (c *Controller) ReleaseTransfer() {
	if c == nil {
		return
	}
	c.transferSem.Release(1)
	c.inFlight.Add(-1)
}

// InFlight returns the number of transfers currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// AcquireBandwidth waits until the bandwidth budget allows the given
// number of bytes to move.
func (c *Controller) AcquireBandwidth(ctx context.Context, bytes int) error {
	if c == nil || c.bwLimiter == nil {
		return nil
	}

	// WaitN rejects requests larger than the burst outright, so feed
	// oversized writes through in burst-sized slices.
	burst := c.bwLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.bwLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// AcquireOp waits until the operation budget allows one more store
// call.
func (c *Controller) AcquireOp(ctx context.Context) error {
	if c == nil || c.opLimiter == nil {
		return nil
	}
	return c.opLimiter.Wait(ctx)
}
