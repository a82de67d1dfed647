// Package reveal models the fade-up entrance used by every content block on
// the site. A Block starts pending, becomes revealed the first time its region
// is at least Threshold visible, and never goes back.
package reveal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"
)

const (
	// Threshold is the fraction of a block's area that must be visible.
	Threshold = 0.15
	// Duration of the opacity/offset transition.
	Duration = 700 * time.Millisecond
	// Easing is the CSS timing function for the transition.
	Easing = "ease-out"
)

// ErrUnsupported is returned by watchers when the host has no way to detect
// visibility.
var ErrUnsupported = errors.New("reveal: visibility detection unsupported")

// VisibilityWatcher reports whether a region crossed the visibility threshold.
type VisibilityWatcher interface {
	Observe(ctx context.Context, threshold float64) (<-chan bool, error)
	Disconnect()
}

// Options configures a Block. The zero value is valid.
type Options struct {
	// Delay staggers the start of the transition. Negative values count as 0.
	Delay time.Duration
}

func (o Options) delay() time.Duration {
	if o.Delay < 0 {
		return 0
	}
	return o.Delay
}

// Block is one revealable region.
type Block struct {
	opts Options

	mu       sync.Mutex
	revealed bool
	watcher  VisibilityWatcher
	cancel   context.CancelFunc
	done     chan struct{}
}

// New returns a pending block.
func New(opts Options) *Block {
	return &Block{opts: opts}
}

// Delay returns the effective transition delay.
func (b *Block) Delay() time.Duration { return b.opts.delay() }

// IsRevealed reports the current state.
func (b *Block) IsRevealed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revealed
}

// Mount starts observing w. A nil watcher, or one that fails to observe,
// reveals the block immediately so content is never left hidden.
func (b *Block) Mount(ctx context.Context, w VisibilityWatcher) {
	b.mu.Lock()
	if b.revealed || b.watcher != nil {
		b.mu.Unlock()
		return
	}
	if w == nil {
		b.revealed = true
		b.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	events, err := w.Observe(ctx, Threshold)
	if err != nil {
		cancel()
		b.revealed = true
		b.mu.Unlock()
		return
	}
	b.watcher = w
	b.cancel = cancel
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	go b.watch(ctx, events, done)
}

func (b *Block) watch(ctx context.Context, events <-chan bool, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case visible, ok := <-events:
			if !ok {
				return
			}
			if visible {
				b.reveal()
				return
			}
		}
	}
}

func (b *Block) reveal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revealed = true
	b.release()
}

// release must be called with mu held.
func (b *Block) release() {
	if b.watcher != nil {
		b.watcher.Disconnect()
		b.watcher = nil
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Unmount stops observing and waits for the watch goroutine to exit.
func (b *Block) Unmount() {
	b.mu.Lock()
	b.release()
	done := b.done
	b.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Class is the CSS class list for the block's wrapper.
func (b *Block) Class() string {
	if b.IsRevealed() {
		return "reveal is-revealed"
	}
	return "reveal"
}

// Style is the inline style carrying the stagger delay.
func (b *Block) Style() template.CSS {
	return template.CSS(fmt.Sprintf("transition-delay: %dms", b.Delay().Milliseconds()))
}
