// Package worker holds background loops that run alongside the HTTP server.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/shop"
)

// DefaultRestockInterval is how often the sweep looks for stale shops. It is
// deliberately shorter than the refresh window so most regenerations happen
// here instead of on a player's read.
const DefaultRestockInterval = 10 * time.Minute

// RestockWorker periodically sweeps all shops and regenerates any stock older
// than the refresh window. Stock freshness is still enforced lazily on read;
// the sweep only moves the reroll cost off the request path.
type RestockWorker struct {
	shops    shop.Service
	clock    clockwork.Clock
	interval time.Duration

	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
}

// NewRestockWorker creates a RestockWorker. A non-positive interval falls
// back to DefaultRestockInterval.
func NewRestockWorker(shops shop.Service, clock clockwork.Clock, interval time.Duration) *RestockWorker {
	if interval <= 0 {
		interval = DefaultRestockInterval
	}
	return &RestockWorker{
		shops:    shops,
		clock:    clock,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the sweep loop. Calling Start twice is a no-op.
func (w *RestockWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true

	w.wg.Add(1)
	go w.run()
}

func (w *RestockWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.clock.After(w.interval):
			w.sweep(context.Background())
		case <-w.shutdown:
			return
		}
	}
}

// sweep regenerates stock for every shop whose refresh window has passed.
// Errors are logged per shop so one bad shop doesn't starve the rest.
func (w *RestockWorker) sweep(ctx context.Context) {
	log := logger.FromContext(ctx)

	shops, err := w.shops.ListShops(ctx)
	if err != nil {
		log.Error("Restock sweep failed to list shops", "error", err)
		return
	}

	now := w.clock.Now()
	for _, s := range shops {
		if now.Sub(s.LastRefresh) <= domain.ShopRefreshWindow {
			continue
		}
		// Stock regenerates stale inventory as a side effect
		if _, err := w.shops.Stock(ctx, s.ID); err != nil {
			log.Error("Restock sweep failed", "shopID", s.ID, "error", err)
			continue
		}
		log.Info("Restocked shop", "shopID", s.ID, "shop", s.Name)
	}
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (w *RestockWorker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
