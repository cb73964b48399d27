package fs

import (
	"sync"
	"time"

	"github.com/aretw0/pagemap/pkg/core"
)

// debouncer coalesces bursts of events for the same path into one delivery.
// A create followed by writes is still reported as a create.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := event.Path
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
		if prev := d.pending[key]; prev.Type == core.EventCreate && event.Type == core.EventModify {
			event.Type = core.EventCreate
		}
	}
	d.pending[key] = event

	d.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[key] != timer {
			d.mu.Unlock()
			return
		}
		e := d.pending[key]
		delete(d.timers, key)
		delete(d.pending, key)
		d.mu.Unlock()

		fire(e)
	})
	d.timers[key] = timer
}

// stopAndWait rejects new events, cancels pending timers and waits for
// in-flight deliveries to finish, up to timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
