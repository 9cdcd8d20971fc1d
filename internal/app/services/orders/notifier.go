package orders

import (
	"context"
	"sync"

	"github.com/shoplane/storefront/internal/app/system"
	"github.com/shoplane/storefront/pkg/logger"
)

var _ system.Service = (*Notifier)(nil)

// Notifier drains the placed-order channel in the background. Today it
// only records confirmations in the log; an email or webhook sender
// would slot in here.
type Notifier struct {
	service *Service
	log     *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewNotifier creates a lifecycle-managed order notifier.
func NewNotifier(service *Service, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewDefault("order-notifier")
	}
	return &Notifier{service: service, log: log}
}

func (n *Notifier) Name() string { return "order-notifier" }

func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.running = true
	n.mu.Unlock()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case o := <-n.service.placed:
				n.log.WithField("order_id", o.ID).
					WithField("user_id", o.UserID).
					WithField("items", len(o.Items)).
					Info("order confirmation dispatched")
			}
		}
	}()

	n.log.Info("order notifier started")
	return nil
}

func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return nil
	}
	cancel := n.cancel
	n.running = false
	n.cancel = nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		n.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	n.log.Info("order notifier stopped")
	return nil
}
