// Package connectivity tracks whether the remote translation service is usable.
package connectivity

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/at-ishikawa/mizodict/internal/metrics"
	"github.com/at-ishikawa/mizodict/internal/translation"
)

const (
	DefaultTimeout  = 3 * time.Second
	DefaultInterval = 30 * time.Second
)

type StatusClient interface {
	Status(ctx context.Context) (translation.Status, error)
}

type Checker struct {
	client   StatusClient
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger

	connected atomic.Bool
}

func NewChecker(client StatusClient, timeout, interval time.Duration, logger *slog.Logger) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		client:   client,
		timeout:  timeout,
		interval: interval,
		logger:   logger.With("component", "connectivity"),
	}
}

// Probe asks the service for its status and records whether it can translate.
// Errors only flip the state to disconnected.
func (c *Checker) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	connected := false
	status, err := c.client.Status(ctx)
	switch {
	case err != nil:
		c.logger.Warn("translation service is unreachable", "error", err)
	case !status.Usable():
		c.logger.Warn("translation service has no model or api key")
	default:
		connected = true
		c.logger.Debug("translation service is available", "model", status.ModelName)
	}

	c.connected.Store(connected)
	metrics.SetServiceUp(connected)
	return connected
}

// Run probes immediately and then on every interval until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	c.Probe(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

func (c *Checker) Connected() bool {
	return c.connected.Load()
}
