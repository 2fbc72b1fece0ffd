package control

import (
	"context"
	"time"

	"github.com/hatstand/greeremote/gree"
	"go.uber.org/zap"
)

// Sender transmits a single command to the air conditioner.
type Sender interface {
	Transmit(ctx context.Context, code *gree.ScanCode) error
}

type StatusPublisher interface {
	Publish(code string, ok bool) error
}

type Controller struct {
	sender          Sender
	statusPublisher StatusPublisher
	logger          *zap.Logger
}

// NewController returns a Controller. statusPublisher may be nil.
func NewController(sender Sender, statusPublisher StatusPublisher, logger *zap.Logger) *Controller {
	return &Controller{
		sender:          sender,
		statusPublisher: statusPublisher,
		logger:          logger,
	}
}

// Send transmits code and reports the outcome to the status publisher.
func (c *Controller) Send(ctx context.Context, code gree.ScanCode) error {
	err := c.sender.Transmit(ctx, &code)
	if err != nil {
		c.logger.Error("Failed to transmit", zap.Stringer("code", code), zap.Error(err))
	} else {
		c.logger.Info("Sent command", zap.Stringer("code", code))
	}
	if c.statusPublisher != nil {
		if perr := c.statusPublisher.Publish(code.String(), err == nil); perr != nil {
			c.logger.Warn("Failed to publish status", zap.Error(perr))
		}
	}
	return err
}

// Repeat sends code immediately and then every interval until ctx is done.
func (c *Controller) Repeat(ctx context.Context, code gree.ScanCode, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	c.Send(ctx, code)
	for {
		select {
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			c.Send(ctx, code)
		case <-ctx.Done():
			return
		}
	}
}

// StubSender only logs. It stands in for the transmitter in dry runs.
type StubSender struct {
	Logger *zap.Logger
}

func (s *StubSender) Transmit(ctx context.Context, code *gree.ScanCode) error {
	s.Logger.Info("Would transmit", zap.Stringer("code", code))
	return nil
}
