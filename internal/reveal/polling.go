package reveal

import (
	"context"
	"sync"
	"time"
)

const defaultPollInterval = 100 * time.Millisecond

// PollingWatcher samples a visible-area ratio on an interval. It stands in for
// a native observer on hosts that lack one.
type PollingWatcher struct {
	// Ratio returns the visible fraction of the region in [0, 1].
	Ratio    func() (float64, error)
	// Interval between samples; defaults to 100ms.
	Interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Observe starts sampling. It emits true once the ratio reaches threshold and
// false for every sample below it. A sampling error closes the stream.
func (p *PollingWatcher) Observe(ctx context.Context, threshold float64) (<-chan bool, error) {
	if p.Ratio == nil {
		return nil, ErrUnsupported
	}
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	out := make(chan bool)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			ratio, err := p.Ratio()
			if err != nil {
				return
			}
			select {
			case out <- ratio >= threshold:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Disconnect stops sampling. Safe to call more than once.
func (p *PollingWatcher) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
