package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/burakkoc5/falimatik/internal/logging"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher sends mail in the background. Each message gets its own
// goroutine detached from the caller's cancellation; Wait drains them on
// shutdown.
type Dispatcher struct {
	sender  Sender
	logger  logging.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(s Sender, l logging.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  s,
		logger:  l.With("module", "mail_dispatcher"),
		timeout: defaultSendTimeout,
	}
}

// Dispatch queues msg and returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error(ctx, "email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
			return
		}
		d.logger.Info(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	}()
}

// Wait blocks until every dispatched message is done or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
